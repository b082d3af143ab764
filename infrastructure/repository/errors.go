// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

var (
	// ErrConflict indica violação de unicidade (ex: categoria com mesmo nome)
	ErrConflict = errors.New("registro já existe")
	// ErrReferenceNotFound indica violação de chave estrangeira
	ErrReferenceNotFound = errors.New("registro referenciado não existe")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// translateError converte os códigos do postgres em erros do repositório
func translateError(err error, action string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%s: %w", action, ErrConflict)
		case pqForeignKeyViolation:
			return fmt.Errorf("%s: %w", action, ErrReferenceNotFound)
		}
		return fmt.Errorf("%s: erro do postgres (código: %s, mensagem: %s): %w", action, pqErr.Code, pqErr.Message, err)
	}

	return fmt.Errorf("%s: %w", action, err)
}

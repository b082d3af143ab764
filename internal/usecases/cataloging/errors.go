package cataloging

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação
	ErrInvalidCategory  = errors.New("nome da categoria é obrigatório")
	ErrInvalidProduct   = errors.New("dados inválidos")
	ErrInvalidFileType  = errors.New("tipo de arquivo não permitido")
	ErrEmptyFile        = errors.New("arquivo CSV vazio")
	ErrMissingColumns   = errors.New("CSV deve conter as colunas: name, price, category_id")
	ErrFileTooLarge     = errors.New("arquivo excede o tamanho máximo permitido")
	ErrMalformedCSVFile = errors.New("arquivo CSV malformado")

	// Erros de recurso
	ErrCategoryExists   = errors.New("categoria já existe")
	ErrCategoryNotFound = errors.New("categoria não existe")
	ErrProductNotFound  = errors.New("produto não encontrado")

	// Erros de infraestrutura
	ErrDatabaseOperation = errors.New("erro ao acessar o banco de dados")
	ErrUploadStaging     = errors.New("erro ao processar o arquivo enviado")
)

// CatalogError é um erro com o código de API e detalhes para o cliente
type CatalogError struct {
	Err     error
	Code    string
	Details string
}

func (e *CatalogError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

func NewCatalogError(err error, code string, details string) *CatalogError {
	return &CatalogError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

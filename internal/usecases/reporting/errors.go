package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrNoCategories      = errors.New("nenhuma categoria encontrada")
	ErrInvalidMonthKey   = errors.New("mês inválido, use o formato YYYY-MM")
	ErrInvalidUpdate     = errors.New("dados de atualização inválidos")
	ErrDatabaseOperation = errors.New("erro ao acessar o banco de dados")
)

// ReportError carrega o código de API e detalhes do erro
type ReportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

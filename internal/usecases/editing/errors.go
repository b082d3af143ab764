package editing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Erros da sessão de edição
var (
	ErrRowNotFound       = errors.New("monthly aggregate not found")
	ErrNotEditing        = errors.New("row is not in edit mode")
	ErrSaveInProgress    = errors.New("a save is already in progress for this row")
	ErrAnotherRowEditing = errors.New("another row is already being edited")
	ErrNegativeValue     = errors.New("draft values must be non-negative")
)

// SaveError envolve a falha do gateway de persistência. O rascunho continua intacto.
type SaveError struct {
	Key domain.MonthKey
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("erro ao salvar vendas de %s: %s", e.Key, e.Err.Error())
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

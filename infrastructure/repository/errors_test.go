package repository

import (
	"errors"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		validate func(t *testing.T, err error)
	}{
		{
			name: "sem erro",
			err:  nil,
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "violação de unicidade vira conflito",
			err:  &pq.Error{Code: pqUniqueViolation, Message: "duplicate key"},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrConflict)
			},
		},
		{
			name: "chave estrangeira vira referência inexistente",
			err:  &pq.Error{Code: pqForeignKeyViolation, Message: "fk"},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrReferenceNotFound)
			},
		},
		{
			name: "outro código do postgres é preservado",
			err:  &pq.Error{Code: "42P01", Message: "relation does not exist"},
			validate: func(t *testing.T, err error) {
				var pqErr *pq.Error
				assert.True(t, errors.As(err, &pqErr))
				assert.Contains(t, err.Error(), "42P01")
			},
		},
		{
			name: "erro genérico",
			err:  errors.New("conexão recusada"),
			validate: func(t *testing.T, err error) {
				assert.EqualError(t, err, "ação: conexão recusada")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, translateError(tt.err, "ação"))
		})
	}
}

func TestSelectProducts_Query(t *testing.T) {
	query, args, err := selectProducts().Where(squirrel.Eq{"p.category_id": int64(2)}).ToSql()

	assert.NoError(t, err)
	assert.Contains(t, query, "LEFT JOIN categories c ON c.id = p.category_id")
	assert.Contains(t, query, "WHERE p.category_id = $1")
	assert.Equal(t, []any{int64(2)}, args)
}

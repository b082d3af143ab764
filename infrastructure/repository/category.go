package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const categoriesTable = "categories"

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

type categoryRepository struct {
	conn postgres.Queryer
}

func NewCategoryRepository(conn postgres.Queryer) CategoryRepository {
	return &categoryRepository{conn: conn}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query, args, err := psql.
		Select("id", "name").
		From(categoriesTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "erro ao listar categorias")
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("erro ao escanear categoria: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return categories, nil
}

// GetByID devolve nil, nil quando a categoria não existe
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query, args, err := psql.
		Select("id", "name").
		From(categoriesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var c domain.Category
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError(err, "erro ao buscar categoria")
	}

	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, name string) (*domain.Category, error) {
	query, args, err := psql.
		Insert(categoriesTable).
		Columns("name").
		Values(name).
		Suffix("RETURNING id, name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var c domain.Category
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name); err != nil {
		return nil, translateError(err, "erro ao criar categoria")
	}

	return &c, nil
}

// ExistingIDs devolve quais dos ids informados existem
func (r *categoryRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	existing := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return existing, nil
	}

	query, args, err := psql.
		Select("id").
		From(categoriesTable).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "erro ao verificar categorias")
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear categoria: %w", err)
		}
		existing[id] = true
	}

	return existing, rows.Err()
}

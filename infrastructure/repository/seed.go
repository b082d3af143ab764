package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// SeedData é a carga inicial lida dos CSVs de data/
type SeedData struct {
	Categories []domain.Category
	Products   []domain.Product
	Sales      []domain.SaleRecord
}

type SeedRepository interface {
	IsEmpty(ctx context.Context) (bool, error)
	Seed(ctx context.Context, data SeedData) error
}

type seedRepository struct {
	conn postgres.Conn
}

func NewSeedRepository(conn postgres.Conn) SeedRepository {
	return &seedRepository{conn: conn}
}

// IsEmpty indica se ainda não existe nenhuma categoria cadastrada
func (r *seedRepository) IsEmpty(ctx context.Context) (bool, error) {
	query, args, err := psql.Select("COUNT(*)").From(categoriesTable).ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, translateError(err, "erro ao contar categorias")
	}

	return count == 0, nil
}

// Seed insere categorias, produtos e vendas com os ids originais e ajusta as sequences
func (r *seedRepository) Seed(ctx context.Context, data SeedData) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if len(data.Categories) > 0 {
			builder := psql.Insert(categoriesTable).Columns("id", "name")
			for _, c := range data.Categories {
				builder = builder.Values(c.ID, c.Name)
			}
			if err := execBuilder(ctx, tx, builder, "erro ao inserir categorias"); err != nil {
				return err
			}
		}

		if len(data.Products) > 0 {
			builder := psql.Insert("products").Columns("id", "name", "description", "price", "category_id")
			for _, p := range data.Products {
				builder = builder.Values(p.ID, p.Name, p.Description, p.Price, p.CategoryID)
			}
			if err := execBuilder(ctx, tx, builder, "erro ao inserir produtos"); err != nil {
				return err
			}
		}

		if len(data.Sales) > 0 {
			builder := psql.Insert("sales").Columns("id", "product_id", "quantity", "total_price", "date")
			for _, s := range data.Sales {
				builder = builder.Values(s.ID, s.ProductID, s.Quantity, s.TotalPrice, s.Date)
			}
			if err := execBuilder(ctx, tx, builder, "erro ao inserir vendas"); err != nil {
				return err
			}
		}

		for _, table := range []string{"categories", "products", "sales"} {
			stmt := fmt.Sprintf(
				"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)",
				table, table,
			)
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return translateError(err, "erro ao ajustar sequence de "+table)
			}
		}

		return nil
	})
}

func execBuilder(ctx context.Context, q postgres.Queryer, builder squirrel.Sqlizer, action string) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return translateError(err, action)
	}

	return nil
}

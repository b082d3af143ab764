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

const productsTable = "products p"

var productColumns = []string{
	"p.id",
	"p.name",
	"p.description",
	"p.price",
	"p.category_id",
	"c.name",
	"p.total_sold_override",
}

type ProductRepository interface {
	List(ctx context.Context, filter domain.ReportFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, product domain.NewProduct) (*domain.Product, error)
	CreateBatch(ctx context.Context, products []domain.NewProduct) (int, error)
	UpdatePricing(ctx context.Context, id int64, price float64, totalSold *int) error
}

type productRepository struct {
	conn postgres.Conn
}

func NewProductRepository(conn postgres.Conn) ProductRepository {
	return &productRepository{conn: conn}
}

func selectProducts() squirrel.SelectBuilder {
	return psql.
		Select(productColumns...).
		From(productsTable).
		LeftJoin("categories c ON c.id = p.category_id")
}

func (r *productRepository) List(ctx context.Context, filter domain.ReportFilter) ([]domain.Product, error) {
	builder := selectProducts().OrderBy("p.id ASC")
	if filter.CategoryID != nil {
		builder = builder.Where(squirrel.Eq{"p.category_id": *filter.CategoryID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "erro ao listar produtos")
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear produto: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return products, nil
}

// GetByID devolve nil, nil quando o produto não existe
func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query, args, err := selectProducts().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	product, err := scanProduct(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError(err, "erro ao buscar produto")
	}

	return product, nil
}

func (r *productRepository) Create(ctx context.Context, product domain.NewProduct) (*domain.Product, error) {
	id, err := insertProduct(ctx, r.conn, product)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// CreateBatch insere todos os produtos em uma única transação
func (r *productRepository) CreateBatch(ctx context.Context, products []domain.NewProduct) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	inserted := 0
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, product := range products {
			if _, err := insertProduct(ctx, tx, product); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func (r *productRepository) UpdatePricing(ctx context.Context, id int64, price float64, totalSold *int) error {
	query, args, err := psql.
		Update("products").
		Set("price", price).
		Set("total_sold_override", totalSold).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err, "erro ao atualizar produto")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao verificar linhas afetadas: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func insertProduct(ctx context.Context, q postgres.Queryer, product domain.NewProduct) (int64, error) {
	query, args, err := psql.
		Insert("products").
		Columns("name", "description", "price", "category_id").
		Values(product.Name, product.Description, product.Price, int64(product.CategoryID)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, translateError(err, "erro ao inserir produto")
	}

	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p        domain.Product
		category sql.NullString
		override sql.NullInt64
	)

	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &category, &override); err != nil {
		return nil, err
	}

	if category.Valid {
		name := category.String
		p.Category = &name
	}
	if override.Valid {
		v := int(override.Int64)
		p.TotalSoldOverride = &v
	}

	return &p, nil
}

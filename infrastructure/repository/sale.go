package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

type SaleRepository interface {
	// List devolve as vendas com nome e preço atual do produto. Profit é calculado pelo serviço.
	List(ctx context.Context, filter domain.ReportFilter) ([]domain.SaleRecord, error)
}

type saleRepository struct {
	conn postgres.Queryer
}

func NewSaleRepository(conn postgres.Queryer) SaleRepository {
	return &saleRepository{conn: conn}
}

func (r *saleRepository) List(ctx context.Context, filter domain.ReportFilter) ([]domain.SaleRecord, error) {
	builder := psql.
		Select(
			"s.id",
			"s.product_id",
			"COALESCE(p.name, '')",
			"s.quantity",
			"COALESCE(p.price, 0)",
			"s.total_price",
			"s.date",
		).
		From("sales s").
		LeftJoin("products p ON p.id = s.product_id").
		OrderBy("s.date ASC", "s.id ASC")

	if filter.CategoryID != nil {
		builder = builder.Where(squirrel.Eq{"p.category_id": *filter.CategoryID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "erro ao listar vendas")
	}
	defer rows.Close()

	sales := make([]domain.SaleRecord, 0)
	for rows.Next() {
		var s domain.SaleRecord
		if err := rows.Scan(&s.ID, &s.ProductID, &s.ProductName, &s.Quantity, &s.UnitPrice, &s.TotalPrice, &s.Date); err != nil {
			return nil, fmt.Errorf("erro ao escanear venda: %w", err)
		}
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sales, nil
}

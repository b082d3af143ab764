package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const (
	monthlyAdjustmentsTable = "monthly_sales_adjustments"
	monthlySnapshotsTable   = "monthly_sales_snapshots"
)

type MonthlySalesRepository interface {
	SaveAdjustment(ctx context.Context, adjustment domain.MonthlySalesAdjustment) error
	ListAdjustments(ctx context.Context) ([]domain.MonthlySalesAdjustment, error)
	SaveSnapshots(ctx context.Context, snapshots []domain.MonthlySalesSnapshot) error
	GetAllPeriods(ctx context.Context) ([]string, error)
}

type monthlySalesRepository struct {
	conn postgres.Conn
}

func NewMonthlySalesRepository(conn postgres.Conn) MonthlySalesRepository {
	return &monthlySalesRepository{conn: conn}
}

func (r *monthlySalesRepository) SaveAdjustment(ctx context.Context, adjustment domain.MonthlySalesAdjustment) error {
	query, args, err := psql.
		Insert(monthlyAdjustmentsTable).
		Columns("month_key", "quantity", "price", "updated_at").
		Values(adjustment.MonthKey.String(), adjustment.Quantity, adjustment.Price, squirrel.Expr("NOW()")).
		Suffix(`
			ON CONFLICT (month_key) DO UPDATE SET
				quantity = EXCLUDED.quantity,
				price = EXCLUDED.price,
				updated_at = NOW()
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "erro ao salvar ajuste mensal")
	}

	return nil
}

func (r *monthlySalesRepository) ListAdjustments(ctx context.Context) ([]domain.MonthlySalesAdjustment, error) {
	query, args, err := psql.
		Select("month_key", "quantity", "price", "updated_at").
		From(monthlyAdjustmentsTable).
		OrderBy("month_key ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "erro ao listar ajustes mensais")
	}
	defer rows.Close()

	adjustments := make([]domain.MonthlySalesAdjustment, 0)
	for rows.Next() {
		var (
			a   domain.MonthlySalesAdjustment
			key string
		)
		if err := rows.Scan(&key, &a.Quantity, &a.Price, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear ajuste mensal: %w", err)
		}
		a.MonthKey = domain.MonthKey(strings.TrimSpace(key))
		adjustments = append(adjustments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return adjustments, nil
}

// SaveSnapshots faz upsert de todos os meses em uma única transação
func (r *monthlySalesRepository) SaveSnapshots(ctx context.Context, snapshots []domain.MonthlySalesSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	builder := psql.
		Insert(monthlySnapshotsTable).
		Columns("month_key", "quantity", "revenue", "profit", "sales_count", "updated_at")

	for _, s := range snapshots {
		builder = builder.Values(s.MonthKey.String(), s.Quantity, s.Revenue, s.Profit, s.SalesCount, squirrel.Expr("NOW()"))
	}

	query, args, err := builder.
		Suffix(`
			ON CONFLICT (month_key) DO UPDATE SET
				quantity = EXCLUDED.quantity,
				revenue = EXCLUDED.revenue,
				profit = EXCLUDED.profit,
				sales_count = EXCLUDED.sales_count,
				updated_at = NOW()
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return translateError(err, "erro ao salvar snapshots mensais")
		}
		return nil
	})
}

// GetAllPeriods devolve os meses (yyyy-mm) com snapshot, em ordem decrescente
func (r *monthlySalesRepository) GetAllPeriods(ctx context.Context) ([]string, error) {
	query, args, err := psql.
		Select("month_key").
		From(monthlySnapshotsTable).
		OrderBy("month_key DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "erro ao listar períodos")
	}
	defer rows.Close()

	periods := make([]string, 0)
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, strings.TrimSpace(period))
	}

	return periods, rows.Err()
}

package salesclient

import (
	"context"
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// UpdateMonthlySales é o gateway de persistência usado pela sessão de edição
func (c *SalesClient) UpdateMonthlySales(ctx context.Context, key domain.MonthKey, update domain.MonthlySalesUpdate) (*domain.MonthlySalesUpdateResult, error) {
	var result domain.MonthlySalesUpdateResult
	p := "/update-monthly-sales/" + key.String()
	if err := c.doJSON(ctx, http.MethodPut, p, nil, update, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

package salesclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// salesReportPayload adia a leitura das vendas para aplicar o fuso do cliente às datas
type salesReportPayload struct {
	Meta        domain.ReportMeta               `json:"meta"`
	Products    []domain.Product                `json:"products"`
	Sales       []jsoniter.RawMessage           `json:"sales"`
	Adjustments []domain.MonthlySalesAdjustment `json:"monthly_adjustments"`
}

// GetSalesReport busca o relatório; categoryID nil busca todas as categorias
func (c *SalesClient) GetSalesReport(ctx context.Context, categoryID *int64) (*domain.SalesReport, error) {
	query := url.Values{}
	if categoryID != nil {
		query.Set("category_id", strconv.FormatInt(*categoryID, 10))
	}

	var payload salesReportPayload
	if err := c.doJSON(ctx, http.MethodGet, "/sales-report", query, nil, &payload); err != nil {
		return nil, err
	}

	report := domain.SalesReport{
		Meta:        payload.Meta,
		Products:    payload.Products,
		Sales:       make([]domain.SaleRecord, 0, len(payload.Sales)),
		Adjustments: payload.Adjustments,
	}
	for _, raw := range payload.Sales {
		sale, err := domain.UnmarshalSaleRecord(raw, c.location)
		if err != nil {
			return nil, malformedError(err)
		}
		report.Sales = append(report.Sales, sale)
	}

	if report.Products == nil {
		report.Products = []domain.Product{}
	}

	return &report, nil
}

func (c *SalesClient) GetCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		// A API responde 404 quando não há categorias; para o cliente é uma lista vazia
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Kind == KindStatus && apiErr.StatusCode == http.StatusNotFound {
			return []domain.Category{}, nil
		}
		return nil, err
	}

	return categories, nil
}

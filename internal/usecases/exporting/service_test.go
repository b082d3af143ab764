package exporting

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

type stubSource struct {
	report *domain.SalesReport
	err    error
	filter *domain.ReportFilter
}

func (s *stubSource) GetSalesReport(ctx context.Context, filter domain.ReportFilter) (*domain.SalesReport, error) {
	s.filter = &filter
	return s.report, s.err
}

func sampleReport() *domain.SalesReport {
	category := "Papelaria"
	return &domain.SalesReport{
		Products: []domain.Product{
			{ID: 1, Name: "Caneta, azul", Description: "Tinta \"gel\"", Price: 2.5, Category: &category, TotalSold: 4, Revenue: 10},
			{ID: 2, Name: "Avulso", Price: 1},
		},
		Sales: []domain.SaleRecord{
			{ID: 7, ProductID: 1, ProductName: "Caneta, azul", Quantity: 4, UnitPrice: 2.5, TotalPrice: 12, Profit: 2,
				Date: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)},
		},
	}
}

func TestExport(t *testing.T) {
	tests := []struct {
		name       string
		exportType domain.ExportType
		source     *stubSource
		validate   func(t *testing.T, out string, err error)
	}{
		{
			name:       "produtos",
			exportType: domain.ExportProducts,
			source:     &stubSource{report: sampleReport()},
			validate: func(t *testing.T, out string, err error) {
				require.NoError(t, err)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				require.Len(t, lines, 3)
				assert.Equal(t, "id,name,description,price,category,total_sold,revenue", lines[0])
				assert.Equal(t, `1,"Caneta, azul","Tinta ""gel""",2.50,Papelaria,4,10.00`, lines[1])
				assert.Equal(t, "2,Avulso,,1.00,,0,0.00", lines[2])
			},
		},
		{
			name:       "vendas",
			exportType: domain.ExportSales,
			source:     &stubSource{report: sampleReport()},
			validate: func(t *testing.T, out string, err error) {
				require.NoError(t, err)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				require.Len(t, lines, 2)
				assert.Equal(t, "id,product_id,product_name,quantity,unit_price,total_price,profit,date", lines[0])
				assert.Equal(t, `7,1,"Caneta, azul",4,2.50,12.00,2.00,2024-03-01T10:00:00Z`, lines[1])
			},
		},
		{
			name:       "tipo inválido",
			exportType: domain.ExportType("users"),
			source:     &stubSource{report: sampleReport()},
			validate: func(t *testing.T, out string, err error) {
				assert.ErrorIs(t, err, ErrInvalidExportType)
				assert.Empty(t, out)
			},
		},
		{
			name:       "falha no relatório",
			exportType: domain.ExportSales,
			source:     &stubSource{err: errors.New("conexão recusada")},
			validate: func(t *testing.T, out string, err error) {
				assert.ErrorIs(t, err, ErrReportUnavailable)
				assert.Empty(t, out)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewService(tt.source).Export(context.Background(), tt.exportType, &buf)
			tt.validate(t, buf.String(), err)
		})
	}
}

func TestExport_IgnoresCategoryFilter(t *testing.T) {
	source := &stubSource{report: &domain.SalesReport{}}

	require.NoError(t, NewService(source).Export(context.Background(), domain.ExportProducts, &bytes.Buffer{}))
	require.NotNil(t, source.filter)
	assert.Nil(t, source.filter.CategoryID)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "sales_export.csv", Filename(domain.ExportSales))
}

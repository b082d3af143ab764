package exporting

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var (
	ErrInvalidExportType = errors.New("tipo de exportação inválido")
	ErrReportUnavailable = errors.New("não foi possível gerar o relatório")
)

var (
	productColumns = []string{"id", "name", "description", "price", "category", "total_sold", "revenue"}
	saleColumns    = []string{"id", "product_id", "product_name", "quantity", "unit_price", "total_price", "profit", "date"}
)

// ReportSource fornece o relatório completo usado na exportação
type ReportSource interface {
	GetSalesReport(ctx context.Context, filter domain.ReportFilter) (*domain.SalesReport, error)
}

type Exporter interface {
	Export(ctx context.Context, exportType domain.ExportType, w io.Writer) error
}

type Service struct {
	source ReportSource
}

func NewService(source ReportSource) *Service {
	return &Service{source: source}
}

// Filename devolve o nome sugerido para o download
func Filename(exportType domain.ExportType) string {
	return fmt.Sprintf("%s_export.csv", exportType)
}

// Export escreve em w o CSV da coleção pedida, sempre sem filtro de categoria
func (s *Service) Export(ctx context.Context, exportType domain.ExportType, w io.Writer) error {
	if !exportType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidExportType, exportType)
	}

	report, err := s.source.GetSalesReport(ctx, domain.ReportFilter{})
	if err != nil {
		logrus.WithError(err).WithField("type", exportType).Error("Erro ao carregar relatório para exportação")
		return fmt.Errorf("%w: %w", ErrReportUnavailable, err)
	}

	writer := csv.NewWriter(w)

	switch exportType {
	case domain.ExportProducts:
		err = writeProducts(writer, report.Products)
	case domain.ExportSales:
		err = writeSales(writer, report.Sales)
	}
	if err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

func writeProducts(writer *csv.Writer, products []domain.Product) error {
	if err := writer.Write(productColumns); err != nil {
		return err
	}

	for _, p := range products {
		category := ""
		if p.Category != nil {
			category = *p.Category
		}

		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Description,
			formatMoney(p.Price),
			category,
			strconv.Itoa(p.TotalSold),
			formatMoney(p.Revenue),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeSales(writer *csv.Writer, sales []domain.SaleRecord) error {
	if err := writer.Write(saleColumns); err != nil {
		return err
	}

	for _, s := range sales {
		record := []string{
			strconv.FormatInt(s.ID, 10),
			strconv.FormatInt(s.ProductID, 10),
			s.ProductName,
			strconv.Itoa(s.Quantity),
			formatMoney(s.UnitPrice),
			formatMoney(s.TotalPrice),
			formatMoney(s.Profit),
			s.Date.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

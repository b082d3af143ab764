package reporting

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// GetSalesReport monta o relatório (produtos, vendas e totais) para o filtro informado
func (s *Service) GetSalesReport(ctx context.Context, filter domain.ReportFilter) (*domain.SalesReport, error) {
	if s.cache != nil {
		report, found, err := s.cache.GetReport(ctx, filter)
		if err != nil {
			logrus.WithError(err).Warn("Falha ao ler relatório do cache, consultando o banco")
		} else if found {
			logrus.WithField("filter", filter.CacheKey()).Debug("Relatório servido pelo cache")
			return report, nil
		}
	}

	var (
		products    []domain.Product
		sales       []domain.SaleRecord
		adjustments []domain.MonthlySalesAdjustment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.productRepository.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.saleRepository.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		adjustments, err = s.monthlySalesRepository.ListAdjustments(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("Erro ao carregar dados do relatório")
		return nil, ErrDatabaseOperation
	}

	report := buildReport(products, sales)
	report.Adjustments = adjustments
	report.Meta.GeneratedAt = s.now()

	if s.cache != nil {
		if err := s.cache.SetReport(ctx, filter, report); err != nil {
			logrus.WithError(err).Warn("Falha ao gravar relatório no cache")
		}
	}

	return report, nil
}

type productTotals struct {
	quantity int
	revenue  decimal.Decimal
}

// buildReport calcula lucro por venda e os totais por produto.
// Lucro = total_price - quantity * preço atual do produto.
func buildReport(products []domain.Product, sales []domain.SaleRecord) *domain.SalesReport {
	totals := make(map[int64]*productTotals, len(products))
	totalProfit := decimal.Zero

	reportSales := make([]domain.SaleRecord, 0, len(sales))
	for _, sale := range sales {
		revenue := decimal.NewFromFloat(sale.TotalPrice)
		cost := decimal.NewFromFloat(sale.UnitPrice).Mul(decimal.NewFromInt(int64(sale.Quantity)))
		profit := revenue.Sub(cost)

		sale.Profit = profit.InexactFloat64()
		totalProfit = totalProfit.Add(profit)
		reportSales = append(reportSales, sale)

		t, ok := totals[sale.ProductID]
		if !ok {
			t = &productTotals{revenue: decimal.Zero}
			totals[sale.ProductID] = t
		}
		t.quantity += sale.Quantity
		t.revenue = t.revenue.Add(revenue)
	}

	reportProducts := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if t, ok := totals[product.ID]; ok {
			product.TotalSold = t.quantity
			product.Revenue = t.revenue.InexactFloat64()
		}

		// O total vendido informado manualmente prevalece sobre o calculado
		if product.TotalSoldOverride != nil {
			product.TotalSold = *product.TotalSoldOverride
			product.Revenue = utils.RoundWithTwoDecimalPlace(product.Price * float64(*product.TotalSoldOverride))
		}

		reportProducts = append(reportProducts, product)
	}

	return &domain.SalesReport{
		Meta: domain.ReportMeta{
			TotalProducts: len(reportProducts),
			TotalSales:    len(reportSales),
			TotalProfit:   totalProfit.Round(2).InexactFloat64(),
		},
		Products: reportProducts,
		Sales:    reportSales,
	}
}

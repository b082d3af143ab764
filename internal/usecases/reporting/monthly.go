package reporting

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/aggregating"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// GetMonthlySales agrega as vendas do relatório por mês e aplica os ajustes gravados
// pelo dashboard, com a mesma regra de recálculo da sessão de edição.
func (s *Service) GetMonthlySales(ctx context.Context, filter domain.ReportFilter) ([]domain.MonthlyAggregate, error) {
	report, err := s.GetSalesReport(ctx, filter)
	if err != nil {
		return nil, err
	}

	aggregates := aggregating.Aggregate(report.Sales, s.location)

	return aggregating.ApplyAdjustments(aggregates, report.Adjustments, s.policy), nil
}

// UpdateMonthlySales grava a edição de um mês e invalida o cache
func (s *Service) UpdateMonthlySales(ctx context.Context, monthKey string, update domain.MonthlySalesUpdate) (*domain.MonthlySalesUpdateResult, error) {
	key, err := aggregating.ParseMonthKey(monthKey)
	if err != nil {
		return nil, NewReportError(ErrInvalidMonthKey, apiErrors.ErrInvalidMonthKey, monthKey)
	}

	if err := s.validate.Struct(update); err != nil {
		return nil, NewReportError(ErrInvalidUpdate, apiErrors.ErrInvalidRequest, "quantidade e preço devem ser maiores ou iguais a zero")
	}

	adjustment := domain.MonthlySalesAdjustment{
		MonthKey:  key,
		Quantity:  update.Quantity,
		Price:     update.Price,
		UpdatedAt: s.now(),
	}

	if err := s.monthlySalesRepository.SaveAdjustment(ctx, adjustment); err != nil {
		logrus.WithError(err).WithField("month", key).Error("Erro ao salvar ajuste mensal")
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}

	s.InvalidateCache(ctx)

	return &domain.MonthlySalesUpdateResult{
		Message:  "Vendas mensais atualizadas com sucesso",
		Month:    key,
		Quantity: update.Quantity,
		Price:    update.Price,
	}, nil
}

// GetAvailablePeriods lista os meses com snapshot gravado, com anos e meses únicos
func (s *Service) GetAvailablePeriods(ctx context.Context) (*domain.AvailablePeriods, error) {
	periods, err := s.monthlySalesRepository.GetAllPeriods(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar períodos disponíveis")
		return nil, ErrDatabaseOperation
	}

	yearMap := make(map[string]bool)
	monthMap := make(map[string]bool)
	valid := make([]string, 0, len(periods))

	for _, period := range periods {
		if _, err := aggregating.ParseMonthKey(period); err != nil {
			continue
		}
		valid = append(valid, period)
		yearMap[period[:4]] = true
		monthMap[period[5:]] = true
	}

	years := make([]string, 0, len(yearMap))
	for year := range yearMap {
		years = append(years, year)
	}
	months := make([]string, 0, len(monthMap))
	for month := range monthMap {
		months = append(months, month)
	}

	// Períodos e anos do mais recente para o mais antigo; meses em ordem do calendário
	sort.Sort(sort.Reverse(sort.StringSlice(valid)))
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	sort.Strings(months)

	return &domain.AvailablePeriods{
		Periods: valid,
		Years:   years,
		Months:  months,
	}, nil
}


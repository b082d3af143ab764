package aggregating

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Estrutura para acumular os valores de um mês sem perda de precisão
type monthAccumulator struct {
	label    string
	quantity int64
	revenue  decimal.Decimal
	profit   decimal.Decimal
	count    int
}

// Aggregate agrupa as vendas por mês civil e devolve os agregados em ordem cronológica.
//
// Mês e ano são lidos de record.Date no fuso loc (nil = UTC). Meses sem vendas não
// aparecem no resultado. A função é pura: a mesma entrada, em qualquer ordem, gera a
// mesma saída.
func Aggregate(records []domain.SaleRecord, loc *time.Location) []domain.MonthlyAggregate {
	if loc == nil {
		loc = time.UTC
	}

	buckets := make(map[domain.MonthKey]*monthAccumulator)
	for _, record := range records {
		date := record.Date.In(loc)
		key := NewMonthKey(date.Year(), date.Month())

		acc, ok := buckets[key]
		if !ok {
			acc = &monthAccumulator{
				label:   MonthLabel(date.Month()),
				revenue: decimal.Zero,
				profit:  decimal.Zero,
			}
			buckets[key] = acc
		}

		acc.quantity += int64(record.Quantity)
		acc.revenue = acc.revenue.Add(decimal.NewFromFloat(record.TotalPrice))
		acc.profit = acc.profit.Add(decimal.NewFromFloat(record.Profit))
		acc.count++
	}

	result := make([]domain.MonthlyAggregate, 0, len(buckets))
	for key, acc := range buckets {
		result = append(result, domain.MonthlyAggregate{
			Key:          key,
			Label:        acc.label,
			Quantity:     float64(acc.quantity),
			TotalRevenue: acc.revenue.InexactFloat64(),
			TotalProfit:  acc.profit.InexactFloat64(),
			RecordCount:  acc.count,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// Find localiza o agregado de uma chave
func Find(aggregates []domain.MonthlyAggregate, key domain.MonthKey) (domain.MonthlyAggregate, int, bool) {
	for i, aggregate := range aggregates {
		if aggregate.Key == key {
			return aggregate, i, true
		}
	}
	return domain.MonthlyAggregate{}, -1, false
}

// Replace devolve uma nova coleção com o agregado substituído; a original não é alterada
func Replace(aggregates []domain.MonthlyAggregate, updated domain.MonthlyAggregate) []domain.MonthlyAggregate {
	result := make([]domain.MonthlyAggregate, len(aggregates))
	copy(result, aggregates)

	if _, idx, ok := Find(result, updated.Key); ok {
		result[idx] = updated
	}

	return result
}

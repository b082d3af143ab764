package aggregating

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// ProfitPolicy define como o lucro é recalculado depois que um mês é editado
type ProfitPolicy string

const (
	// CollapseProfit iguala lucro e receita a quantidade × preço (comportamento do dashboard)
	CollapseProfit ProfitPolicy = "collapse"
	// PreserveUnitCost mantém o custo unitário implícito no agregado original
	PreserveUnitCost ProfitPolicy = "preserve-unit-cost"
)

// ParseProfitPolicy converte o valor de configuração. Vazio equivale a CollapseProfit.
func ParseProfitPolicy(value string) (ProfitPolicy, error) {
	switch ProfitPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", CollapseProfit:
		return CollapseProfit, nil
	case PreserveUnitCost:
		return PreserveUnitCost, nil
	default:
		return "", fmt.Errorf("política de lucro desconhecida: %q", value)
	}
}

// SeedUnitPrice calcula o preço unitário inicial de uma edição: receita / max(quantidade, 1)
func SeedUnitPrice(aggregate domain.MonthlyAggregate) float64 {
	quantity := decimal.NewFromFloat(aggregate.Quantity)
	if quantity.LessThan(decimal.NewFromInt(1)) {
		quantity = decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(aggregate.TotalRevenue).Div(quantity).InexactFloat64()
}

// ApplyEdit devolve uma cópia do agregado com a quantidade e o preço editados aplicados
func ApplyEdit(aggregate domain.MonthlyAggregate, quantity, unitPrice float64, policy ProfitPolicy) domain.MonthlyAggregate {
	qty := decimal.NewFromFloat(quantity)
	revenue := qty.Mul(decimal.NewFromFloat(unitPrice))

	profit := revenue
	if policy == PreserveUnitCost && aggregate.Quantity > 0 {
		cost := decimal.NewFromFloat(aggregate.TotalRevenue).Sub(decimal.NewFromFloat(aggregate.TotalProfit))
		unitCost := cost.Div(decimal.NewFromFloat(aggregate.Quantity))
		profit = revenue.Sub(unitCost.Mul(qty))
	}

	updated := aggregate
	updated.Quantity = quantity
	updated.TotalRevenue = revenue.InexactFloat64()
	updated.TotalProfit = profit.InexactFloat64()

	return updated
}

// ApplyAdjustments aplica as edições gravadas pelo gateway sobre os agregados calculados.
// Um mês ajustado sem vendas entra na lista com contagem zero. A entrada não é alterada.
func ApplyAdjustments(
	aggregates []domain.MonthlyAggregate,
	adjustments []domain.MonthlySalesAdjustment,
	policy ProfitPolicy,
) []domain.MonthlyAggregate {
	result := aggregates
	added := false

	for _, adj := range adjustments {
		current, _, ok := Find(result, adj.MonthKey)
		if !ok {
			current = domain.MonthlyAggregate{
				Key:   adj.MonthKey,
				Label: LabelForKey(adj.MonthKey),
			}
			result = append(append([]domain.MonthlyAggregate{}, result...), current)
			added = true
		}

		result = Replace(result, ApplyEdit(current, adj.Quantity, adj.Price, policy))
	}

	if added {
		sort.Slice(result, func(i, j int) bool {
			return result[i].Key < result[j].Key
		})
	}

	return result
}

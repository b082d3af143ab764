package aggregating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestSeedUnitPrice(t *testing.T) {
	assert.Equal(t, 25.0, SeedUnitPrice(domain.MonthlyAggregate{Quantity: 10, TotalRevenue: 250}))
	// Quantidade zero não divide por zero
	assert.Equal(t, 40.0, SeedUnitPrice(domain.MonthlyAggregate{Quantity: 0, TotalRevenue: 40}))
}

func TestApplyEdit(t *testing.T) {
	aggregate := domain.MonthlyAggregate{
		Key:          "2024-03",
		Label:        "Mar",
		Quantity:     10,
		TotalRevenue: 250,
		TotalProfit:  50,
		RecordCount:  4,
	}

	collapsed := ApplyEdit(aggregate, 12, 20, CollapseProfit)
	assert.Equal(t, 12.0, collapsed.Quantity)
	assert.Equal(t, 240.0, collapsed.TotalRevenue)
	assert.Equal(t, 240.0, collapsed.TotalProfit)
	assert.Equal(t, 4, collapsed.RecordCount)
	assert.Equal(t, "Mar", collapsed.Label)

	// custo unitário original = (250 - 50) / 10 = 20
	preserved := ApplyEdit(aggregate, 12, 25, PreserveUnitCost)
	assert.Equal(t, 300.0, preserved.TotalRevenue)
	assert.Equal(t, 60.0, preserved.TotalProfit)

	// o agregado de entrada não é alterado
	assert.Equal(t, 10.0, aggregate.Quantity)
}

func TestParseProfitPolicy(t *testing.T) {
	policy, err := ParseProfitPolicy("")
	assert.NoError(t, err)
	assert.Equal(t, CollapseProfit, policy)

	policy, err = ParseProfitPolicy(" Preserve-Unit-Cost ")
	assert.NoError(t, err)
	assert.Equal(t, PreserveUnitCost, policy)

	_, err = ParseProfitPolicy("margin")
	assert.Error(t, err)
}

func TestApplyAdjustments(t *testing.T) {
	aggregates := []domain.MonthlyAggregate{
		{Key: "2024-01", Label: "Jan", Quantity: 3, TotalRevenue: 30, TotalProfit: 15, RecordCount: 2},
		{Key: "2024-03", Label: "Mar", Quantity: 1, TotalRevenue: 10, TotalProfit: 4, RecordCount: 1},
	}

	result := ApplyAdjustments(aggregates, []domain.MonthlySalesAdjustment{
		{MonthKey: "2024-01", Quantity: 12, Price: 20},
		{MonthKey: "2024-02", Quantity: 2, Price: 7.5},
	}, CollapseProfit)

	assert.Equal(t, []domain.MonthlyAggregate{
		{Key: "2024-01", Label: "Jan", Quantity: 12, TotalRevenue: 240, TotalProfit: 240, RecordCount: 2},
		{Key: "2024-02", Label: "Fev", Quantity: 2, TotalRevenue: 15, TotalProfit: 15},
		{Key: "2024-03", Label: "Mar", Quantity: 1, TotalRevenue: 10, TotalProfit: 4, RecordCount: 1},
	}, result)

	// a coleção original continua com os valores calculados
	assert.Equal(t, 3.0, aggregates[0].Quantity)
	assert.Len(t, aggregates, 2)

	assert.Equal(t, aggregates, ApplyAdjustments(aggregates, nil, CollapseProfit))
}

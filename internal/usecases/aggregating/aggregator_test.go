package aggregating

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func sale(date string, quantity int, total, profit float64) domain.SaleRecord {
	parsed, err := time.Parse(time.DateOnly, date)
	if err != nil {
		panic(err)
	}
	return domain.SaleRecord{
		ProductID:  1,
		Quantity:   quantity,
		UnitPrice:  10,
		TotalPrice: total,
		Profit:     profit,
		Date:       parsed,
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		records  []domain.SaleRecord
		validate func(t *testing.T, result []domain.MonthlyAggregate)
	}{
		{
			name:    "Entrada vazia - deve retornar lista vazia",
			records: nil,
			validate: func(t *testing.T, result []domain.MonthlyAggregate) {
				assert.NotNil(t, result)
				assert.Empty(t, result)
			},
		},
		{
			name:    "Uma venda - deve gerar um único agregado",
			records: []domain.SaleRecord{sale("2024-03-10", 5, 100, 20)},
			validate: func(t *testing.T, result []domain.MonthlyAggregate) {
				require.Len(t, result, 1)
				assert.Equal(t, domain.MonthlyAggregate{
					Key:          "2024-03",
					Label:        "Mar",
					Quantity:     5,
					TotalRevenue: 100,
					TotalProfit:  20,
					RecordCount:  1,
				}, result[0])
			},
		},
		{
			name: "Virada de ano - dezembro antes de janeiro",
			records: []domain.SaleRecord{
				sale("2024-01-05", 1, 10, 1),
				sale("2023-12-15", 2, 20, 2),
			},
			validate: func(t *testing.T, result []domain.MonthlyAggregate) {
				require.Len(t, result, 2)
				assert.Equal(t, domain.MonthKey("2023-12"), result[0].Key)
				assert.Equal(t, "Dez", result[0].Label)
				assert.Equal(t, domain.MonthKey("2024-01"), result[1].Key)
				assert.Equal(t, "Jan", result[1].Label)
			},
		},
		{
			name: "Mesmo mês em anos diferentes - não devem ser agrupados",
			records: []domain.SaleRecord{
				sale("2023-05-01", 1, 10, 1),
				sale("2024-05-01", 1, 10, 1),
			},
			validate: func(t *testing.T, result []domain.MonthlyAggregate) {
				require.Len(t, result, 2)
				assert.Equal(t, domain.MonthKey("2023-05"), result[0].Key)
				assert.Equal(t, domain.MonthKey("2024-05"), result[1].Key)
			},
		},
		{
			name: "Meses sem vendas - não devem ser preenchidos",
			records: []domain.SaleRecord{
				sale("2024-01-10", 1, 10, 1),
				sale("2024-04-10", 1, 10, 1),
			},
			validate: func(t *testing.T, result []domain.MonthlyAggregate) {
				require.Len(t, result, 2)
				assert.Equal(t, domain.MonthKey("2024-01"), result[0].Key)
				assert.Equal(t, domain.MonthKey("2024-04"), result[1].Key)
			},
		},
		{
			name: "Várias vendas no mesmo mês - deve somar valores e contar vendas",
			records: []domain.SaleRecord{
				sale("2024-02-01", 3, 30.10, 5.05),
				sale("2024-02-28", 2, 20.20, 4.05),
				sale("2024-02-14", 0, 0, -1.5),
			},
			validate: func(t *testing.T, result []domain.MonthlyAggregate) {
				require.Len(t, result, 1)
				assert.Equal(t, 5.0, result[0].Quantity)
				assert.Equal(t, 50.30, result[0].TotalRevenue)
				assert.Equal(t, 7.60, result[0].TotalProfit)
				assert.Equal(t, 3, result[0].RecordCount)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Aggregate(tt.records, time.UTC))
		})
	}
}

func TestAggregate_UsesExplicitLocation(t *testing.T) {
	// 2024-03-01 02:00 UTC ainda é fevereiro em São Paulo (UTC-3)
	record := domain.SaleRecord{
		Quantity:   1,
		TotalPrice: 10,
		Date:       time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC),
	}

	saoPaulo := time.FixedZone("BRT", -3*60*60)

	utc := Aggregate([]domain.SaleRecord{record}, nil)
	local := Aggregate([]domain.SaleRecord{record}, saoPaulo)

	require.Len(t, utc, 1)
	require.Len(t, local, 1)
	assert.Equal(t, domain.MonthKey("2024-03"), utc[0].Key)
	assert.Equal(t, domain.MonthKey("2024-02"), local[0].Key)
	assert.Equal(t, "Fev", local[0].Label)
}

func TestAggregate_DateOnlySalesKeepTheirMonth(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	date, err := domain.ParseSaleDate("2024-02-01", saoPaulo)
	require.NoError(t, err)

	result := Aggregate([]domain.SaleRecord{{Quantity: 2, TotalPrice: 24, Date: date}}, saoPaulo)
	require.Len(t, result, 1)
	assert.Equal(t, domain.MonthKey("2024-02"), result[0].Key)
	assert.Equal(t, "Fev", result[0].Label)
}

func randomRecords(rng *rand.Rand, n int) []domain.SaleRecord {
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	records := make([]domain.SaleRecord, n)
	for i := range records {
		quantity := rng.Intn(20)
		price := float64(rng.Intn(10000)) / 100
		records[i] = domain.SaleRecord{
			ID:         int64(i + 1),
			Quantity:   quantity,
			UnitPrice:  price,
			TotalPrice: float64(quantity) * price,
			Profit:     float64(rng.Intn(2000)-500) / 100,
			Date:       start.Add(time.Duration(rng.Intn(3*365*24)) * time.Hour),
		}
	}
	return records
}

func TestAggregate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		records := randomRecords(rng, 1+rng.Intn(200))
		result := Aggregate(records, time.UTC)

		// Um agregado por par (ano, mês) distinto
		distinct := make(map[string]struct{})
		var quantity, revenue, profit float64
		for _, r := range records {
			distinct[r.Date.Format("2006-01")] = struct{}{}
			quantity += float64(r.Quantity)
			revenue += r.TotalPrice
			profit += r.Profit
		}
		require.Len(t, result, len(distinct))

		// Conservação dos totais
		var gotQuantity, gotRevenue, gotProfit float64
		count := 0
		for i, aggregate := range result {
			gotQuantity += aggregate.Quantity
			gotRevenue += aggregate.TotalRevenue
			gotProfit += aggregate.TotalProfit
			count += aggregate.RecordCount
			assert.Positive(t, aggregate.RecordCount)
			if i > 0 {
				assert.Less(t, string(result[i-1].Key), string(aggregate.Key))
			}
		}
		assert.Equal(t, quantity, gotQuantity)
		assert.InDelta(t, revenue, gotRevenue, 1e-6)
		assert.InDelta(t, profit, gotProfit, 1e-6)
		assert.Equal(t, len(records), count)

		// Independência da ordem de entrada
		shuffled := make([]domain.SaleRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, result, Aggregate(shuffled, time.UTC))
	}
}

func TestReplace_DoesNotMutateInput(t *testing.T) {
	original := Aggregate([]domain.SaleRecord{
		sale("2024-01-10", 1, 10, 1),
		sale("2024-02-10", 2, 20, 2),
	}, time.UTC)

	updated := original[1]
	updated.Quantity = 99

	replaced := Replace(original, updated)

	assert.Equal(t, 2.0, original[1].Quantity)
	assert.Equal(t, 99.0, replaced[1].Quantity)
	assert.Equal(t, original[0], replaced[0])
}

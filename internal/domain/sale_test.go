package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSaleDate(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name     string
		value    string
		loc      *time.Location
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "data sem fuso em UTC",
			value:    "2024-02-01",
			expected: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "data sem fuso no fuso configurado",
			value:    "2024-02-01",
			loc:      brt,
			expected: time.Date(2024, 2, 1, 0, 0, 0, 0, brt),
		},
		{
			name:     "data e hora sem fuso no fuso configurado",
			value:    "2024-02-01 08:30:00",
			loc:      brt,
			expected: time.Date(2024, 2, 1, 8, 30, 0, 0, brt),
		},
		{
			name:     "data com fuso mantém o instante",
			value:    "2024-02-01T01:00:00Z",
			loc:      brt,
			expected: time.Date(2024, 2, 1, 1, 0, 0, 0, time.UTC),
		},
		{
			name:    "formato inválido",
			value:   "01/02/2024",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := ParseSaleDate(tt.value, tt.loc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(date), "esperado %s, obtido %s", tt.expected, date)
		})
	}

	// O mês civil lido no fuso configurado é o mês escrito
	date, err := ParseSaleDate("2024-02-01", brt)
	require.NoError(t, err)
	assert.Equal(t, time.February, date.In(brt).Month())
}

func TestUnmarshalSaleRecord(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)

	record, err := UnmarshalSaleRecord([]byte(`{"id":7,"product_id":1,"quantity":2,"total_price":20,"date":"2024-03-01"}`), brt)
	require.NoError(t, err)
	assert.Equal(t, int64(7), record.ID)
	assert.Equal(t, 2, record.Quantity)
	assert.True(t, time.Date(2024, 3, 1, 0, 0, 0, 0, brt).Equal(record.Date))

	_, err = UnmarshalSaleRecord([]byte(`{"id":7,"date":"ontem"}`), brt)
	assert.Error(t, err)

	var sale SaleRecord
	require.NoError(t, sale.UnmarshalJSON([]byte(`{"id":1,"date":"2024-03-10"}`)))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), sale.Date)
}

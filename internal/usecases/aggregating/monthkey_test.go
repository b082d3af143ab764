package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func TestNewMonthKey(t *testing.T) {
	assert.Equal(t, domain.MonthKey("2024-03"), NewMonthKey(2024, time.March))
	assert.Equal(t, domain.MonthKey("0999-12"), NewMonthKey(999, time.December))
}

func TestParseMonthKey(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{input: "2024-01"},
		{input: "1999-12"},
		{input: "2024-00", wantErr: true},
		{input: "2024-13", wantErr: true},
		{input: "2024-3", wantErr: true},
		{input: "24-03", wantErr: true},
		{input: "2024/03", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			key, err := ParseMonthKey(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMonthKey)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, domain.MonthKey(tt.input), key)
		})
	}
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Jan", MonthLabel(time.January))
	assert.Equal(t, "Dez", MonthLabel(time.December))
	assert.Equal(t, "", MonthLabel(time.Month(13)))
	assert.Equal(t, "Out", LabelForKey("2023-10"))
}

package domain

import (
	"strconv"
	"time"
)

// MonthKey identifica um mês no formato YYYY-MM. A ordem lexicográfica é a ordem cronológica.
type MonthKey string

func (k MonthKey) String() string {
	return string(k)
}

// MonthlyAggregate é o resumo das vendas de um mês. Os nomes JSON seguem o contrato do dashboard.
type MonthlyAggregate struct {
	Key          MonthKey `json:"monthKey"`
	Label        string   `json:"month"`
	Quantity     float64  `json:"quantity"`
	TotalRevenue float64  `json:"total_price"`
	TotalProfit  float64  `json:"profit"`
	RecordCount  int      `json:"salesCount"`
}

// MonthlySalesUpdate é o corpo enviado ao gateway de persistência
type MonthlySalesUpdate struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// MonthlySalesUpdateResult é a resposta do gateway ao atualizar um mês
type MonthlySalesUpdateResult struct {
	Message  string   `json:"message"`
	Month    MonthKey `json:"month"`
	Quantity float64  `json:"quantity"`
	Price    float64  `json:"price"`
}

// MonthlySalesAdjustment é a edição persistida de um mês
type MonthlySalesAdjustment struct {
	MonthKey  MonthKey  `json:"month_key"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MonthlySalesSnapshot é o agregado mensal gravado pelo agendador
type MonthlySalesSnapshot struct {
	MonthKey   MonthKey  `json:"month_key"`
	Quantity   float64   `json:"quantity"`
	Revenue    float64   `json:"revenue"`
	Profit     float64   `json:"profit"`
	SalesCount int       `json:"sales_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

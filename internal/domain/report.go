package domain

import "time"

// ReportFilter filtra o relatório de vendas. CategoryID nil significa todas as categorias.
type ReportFilter struct {
	CategoryID *int64
}

// CacheKey identifica o filtro no cache de relatórios
func (f ReportFilter) CacheKey() string {
	if f.CategoryID == nil {
		return "all"
	}
	return "category:" + itoa(*f.CategoryID)
}

// ReportMeta contém os totais do relatório
type ReportMeta struct {
	TotalProducts int       `json:"total_products"`
	TotalSales    int       `json:"total_sales"`
	TotalProfit   float64   `json:"total_profit"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// SalesReport é a resposta de /sales-report. Adjustments traz as edições mensais gravadas
// pelo dashboard, que valem para o mês inteiro independente do filtro.
type SalesReport struct {
	Meta        ReportMeta               `json:"meta"`
	Products    []Product                `json:"products"`
	Sales       []SaleRecord             `json:"sales"`
	Adjustments []MonthlySalesAdjustment `json:"monthly_adjustments,omitempty"`
}

// ImportResult é a resposta da importação de produtos por CSV.
// Errors lista os erros por linha quando a importação é parcial.
type ImportResult struct {
	Message string   `json:"message"`
	Count   int      `json:"count"`
	Errors  []string `json:"errors,omitempty"`
}

// ExportType identifica a coleção exportada em CSV
type ExportType string

const (
	ExportProducts ExportType = "products"
	ExportSales    ExportType = "sales"
)

func (t ExportType) Valid() bool {
	return t == ExportProducts || t == ExportSales
}

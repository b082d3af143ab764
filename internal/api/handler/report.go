package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// GetSalesReport retorna produtos, vendas e totais, opcionalmente filtrados por categoria
func GetSalesReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filter, err := categoryFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "category_id inválido", err.Error())
			return
		}

		report, err := service.GetSalesReport(r.Context(), filter)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao gerar relatório de vendas")
			return
		}

		logger.WithFields(log.Fields{
			"products": len(report.Products),
			"sales":    len(report.Sales),
		}).Info("sales-report: relatório gerado")

		writeJSON(w, r, http.StatusOK, report)
	})
}

// GetCategories lista as categorias. Sem categorias cadastradas a resposta é 404.
func GetCategories(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		categories, err := service.GetCategories(r.Context())
		if err != nil {
			handleServiceError(w, r, err, "Erro ao listar categorias")
			return
		}

		writeJSON(w, r, http.StatusOK, categories)
	})
}

// GetMonthlySales retorna as vendas agregadas por mês
func GetMonthlySales(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter, err := categoryFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "category_id inválido", err.Error())
			return
		}

		aggregates, err := service.GetMonthlySales(r.Context(), filter)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao agregar vendas mensais")
			return
		}

		writeJSON(w, r, http.StatusOK, aggregates)
	})
}

// GetAvailablePeriods retorna os meses com snapshot gravado
func GetAvailablePeriods(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		periods, err := service.GetAvailablePeriods(r.Context())
		if err != nil {
			handleServiceError(w, r, err, "Erro ao buscar períodos disponíveis")
			return
		}

		writeJSON(w, r, http.StatusOK, periods)
	})
}

// UpdateMonthlySales grava a quantidade e o preço editados de um mês
func UpdateMonthlySales(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		monthKey := httprouter.ParamsFromContext(r.Context()).ByName("monthKey")

		var update domain.MonthlySalesUpdate
		if !decodeBody(w, r, &update) {
			return
		}

		result, err := service.UpdateMonthlySales(r.Context(), monthKey, update)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao atualizar vendas mensais")
			return
		}

		log.ForContext(r.Context()).WithField("month", monthKey).Info("update-monthly-sales: mês atualizado")
		writeJSON(w, r, http.StatusOK, result)
	})
}

package handler

import (
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/cataloging"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errInvalidCategoryID = errors.New("category_id inválido")

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

// decodeBody lê o corpo JSON da requisição. Em caso de erro a resposta já foi escrita.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "JSON inválido", err.Error())
		return false
	}
	return true
}

// categoryFilter lê o parâmetro opcional category_id. Ausente ou vazio significa todas as categorias.
func categoryFilter(r *http.Request) (domain.ReportFilter, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("category_id"))
	if raw == "" || raw == "all" {
		return domain.ReportFilter{}, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return domain.ReportFilter{}, errors.Wrapf(errInvalidCategoryID, "valor %q", raw)
	}

	return domain.ReportFilter{CategoryID: &id}, nil
}

// handleServiceError converte os erros dos casos de uso no corpo padronizado
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.ForContext(r.Context()).WithError(err)

	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		logger.Warn("Erro de relatório")
		writeCodedError(w, reportErr.Code, reportErr.Err, reportErr.Details)
		return
	}

	var catalogErr *cataloging.CatalogError
	if errors.As(err, &catalogErr) {
		logger.Warn("Erro de catálogo")
		writeCodedError(w, catalogErr.Code, catalogErr.Err, catalogErr.Details)
		return
	}

	switch {
	case errors.Is(err, reporting.ErrNoCategories):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Nenhuma categoria encontrada", nil)
	case errors.Is(err, reporting.ErrDatabaseOperation), errors.Is(err, cataloging.ErrDatabaseOperation):
		logger.Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, fallback, nil)
	default:
		logger.Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}

func writeCodedError(w http.ResponseWriter, code string, err error, details string) {
	if details == "" {
		apiErrors.WriteError(w, code, err.Error(), nil)
		return
	}
	apiErrors.WriteError(w, code, err.Error(), details)
}

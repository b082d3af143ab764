package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/exporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// Export devolve produtos ou vendas em CSV como anexo
func Export(service exporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		exportType := domain.ExportType(httprouter.ParamsFromContext(r.Context()).ByName("type"))
		if !exportType.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de exportação inválido. Valores aceitos: products, sales", nil)
			return
		}

		// O CSV é montado em memória para que uma falha ainda possa virar resposta JSON
		var buf bytes.Buffer
		if err := service.Export(r.Context(), exportType, &buf); err != nil {
			if errors.Is(err, exporting.ErrInvalidExportType) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			log.ForContext(r.Context()).WithError(err).Error("export: erro ao gerar CSV")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao exportar dados", nil)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exporting.Filename(exportType)))
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("export: erro ao enviar CSV")
		}
	})
}

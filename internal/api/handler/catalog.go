package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/cataloging"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// multipartOverhead cobre os cabeçalhos do multipart além do próprio arquivo
const multipartOverhead = 1 << 20

func CreateCategory(service cataloging.Cataloger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input domain.NewCategory
		if !decodeBody(w, r, &input) {
			return
		}

		created, err := service.CreateCategory(r.Context(), input)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao criar categoria")
			return
		}

		writeJSON(w, r, http.StatusCreated, created)
	})
}

func AddProduct(service cataloging.Cataloger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input domain.NewProduct
		if !decodeBody(w, r, &input) {
			return
		}

		created, err := service.CreateProduct(r.Context(), input)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao criar produto")
			return
		}

		writeJSON(w, r, http.StatusCreated, created)
	})
}

func UpdateProduct(service cataloging.Cataloger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID do produto inválido", rawID)
			return
		}

		var input domain.ProductUpdate
		if !decodeBody(w, r, &input) {
			return
		}

		updated, err := service.UpdateProduct(r.Context(), id, input)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao atualizar produto")
			return
		}

		writeJSON(w, r, http.StatusOK, updated)
	})
}

// UploadProductsCSV recebe o CSV no campo multipart "file" e importa os produtos
func UploadProductsCSV(service cataloging.Cataloger, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if maxBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apiErrors.WriteError(w, apiErrors.ErrPayloadTooLarge, cataloging.ErrFileTooLarge.Error(), nil)
				return
			}
			logger.WithError(err).Warn("upload-csv: arquivo ausente")
			apiErrors.WriteError(w, apiErrors.ErrInvalidUpload, "Nenhum arquivo enviado", nil)
			return
		}
		defer file.Close()

		logger.WithFields(log.Fields{
			"filename": header.Filename,
			"size":     header.Size,
		}).Info("upload-csv: arquivo recebido")

		result, err := service.ImportProductsCSV(r.Context(), header.Filename, file)
		if err != nil {
			handleServiceError(w, r, err, "Erro ao importar produtos")
			return
		}

		writeJSON(w, r, http.StatusCreated, result)
	})
}

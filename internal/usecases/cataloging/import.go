package cataloging

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var requiredColumns = []string{"name", "price", "category_id"}

type csvRow struct {
	line    int
	product domain.NewProduct
}

// ImportProductsCSV importa produtos de um CSV. Linhas inválidas são ignoradas e
// reportadas como "Linha N: motivo"; as válidas são gravadas em uma única transação.
func (s *Service) ImportProductsCSV(ctx context.Context, filename string, content io.Reader) (*domain.ImportResult, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, NewCatalogError(ErrInvalidFileType, apiErrors.ErrInvalidUpload, "nome de arquivo vazio")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return nil, NewCatalogError(ErrInvalidFileType, apiErrors.ErrInvalidUpload, filename)
	}

	staged, err := s.stageUpload(content)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(staged); err != nil {
			logrus.WithError(err).Warn("Não foi possível remover o arquivo temporário")
		}
	}()

	file, err := os.Open(staged)
	if err != nil {
		logrus.WithError(err).Error("Erro ao abrir arquivo temporário")
		return nil, NewCatalogError(ErrUploadStaging, apiErrors.ErrInternalServer, "")
	}
	defer file.Close()

	rows, rowErrors, err := parseProductsCSV(file)
	if err != nil {
		return nil, err
	}

	rows, categoryErrors, err := s.filterUnknownCategories(ctx, rows)
	if err != nil {
		return nil, err
	}
	rowErrors = append(rowErrors, categoryErrors...)

	products := make([]domain.NewProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.product)
	}

	count, err := s.productRepository.CreateBatch(ctx, products)
	if err != nil {
		logrus.WithError(err).Error("Erro ao gravar produtos importados")
		return nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}

	if count > 0 {
		s.invalidate(ctx)
	}

	logrus.WithFields(logrus.Fields{
		"count":  count,
		"errors": len(rowErrors),
	}).Info("Importação de produtos concluída")

	result := &domain.ImportResult{
		Message: fmt.Sprintf("%d produtos importados com sucesso", count),
		Count:   count,
	}
	if len(rowErrors) > 0 {
		result.Errors = sortedRowErrors(rowErrors)
	}

	return result, nil
}

// stageUpload grava o upload em Upload.Dir com nome aleatório e devolve o caminho
func (s *Service) stageUpload(content io.Reader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		logrus.WithError(err).Error("Erro ao criar diretório de upload")
		return "", NewCatalogError(ErrUploadStaging, apiErrors.ErrInternalServer, "")
	}

	id, err := utils.GenerateIDWithSize(16)
	if err != nil {
		return "", NewCatalogError(ErrUploadStaging, apiErrors.ErrInternalServer, "")
	}

	path := filepath.Join(s.uploadDir, "upload-"+id+".csv")
	dst, err := os.Create(path)
	if err != nil {
		logrus.WithError(err).Error("Erro ao criar arquivo temporário")
		return "", NewCatalogError(ErrUploadStaging, apiErrors.ErrInternalServer, "")
	}

	reader := content
	if s.maxUploadBytes > 0 {
		reader = io.LimitReader(content, s.maxUploadBytes+1)
	}

	written, copyErr := io.Copy(dst, reader)
	closeErr := dst.Close()

	if copyErr == nil && closeErr == nil && s.maxUploadBytes > 0 && written > s.maxUploadBytes {
		copyErr = NewCatalogError(ErrFileTooLarge, apiErrors.ErrPayloadTooLarge, "")
	}
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(path)
		var catalogErr *CatalogError
		if errors.As(copyErr, &catalogErr) {
			return "", catalogErr
		}
		logrus.WithError(errors.Join(copyErr, closeErr)).Error("Erro ao gravar arquivo temporário")
		return "", NewCatalogError(ErrUploadStaging, apiErrors.ErrInternalServer, "")
	}

	return path, nil
}

type rowError struct {
	line    int
	message string
}

func sortedRowErrors(errs []rowError) []string {
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].line < errs[j].line })

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, fmt.Sprintf("Linha %d: %s", e.line, e.message))
	}
	return messages
}

// parseProductsCSV valida o cabeçalho e converte as linhas. A numeração começa em 1
// na primeira linha de dados.
func parseProductsCSV(r io.Reader) ([]csvRow, []rowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, NewCatalogError(ErrEmptyFile, apiErrors.ErrInvalidUpload, "")
	}
	if err != nil {
		return nil, nil, NewCatalogError(ErrMalformedCSVFile, apiErrors.ErrInvalidUpload, err.Error())
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, nil, NewCatalogError(ErrMissingColumns, apiErrors.ErrInvalidUpload, "")
		}
	}

	field := func(record []string, column string) string {
		idx, ok := columns[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var (
		rows   []csvRow
		errs   []rowError
		lineNo int
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		lineNo++
		if err != nil {
			errs = append(errs, rowError{line: lineNo, message: err.Error()})
			continue
		}

		name := field(record, "name")
		if name == "" {
			errs = append(errs, rowError{line: lineNo, message: "nome é obrigatório"})
			continue
		}

		price, err := strconv.ParseFloat(field(record, "price"), 64)
		if err != nil || price < 0 {
			errs = append(errs, rowError{line: lineNo, message: fmt.Sprintf("preço inválido %q", field(record, "price"))})
			continue
		}

		categoryID, err := strconv.ParseInt(field(record, "category_id"), 10, 64)
		if err != nil || categoryID <= 0 {
			errs = append(errs, rowError{line: lineNo, message: fmt.Sprintf("categoria inválida %q", field(record, "category_id"))})
			continue
		}

		rows = append(rows, csvRow{
			line: lineNo,
			product: domain.NewProduct{
				Name:        name,
				Description: field(record, "description"),
				Price:       price,
				CategoryID:  domain.ID(categoryID),
			},
		})
	}

	return rows, errs, nil
}

func (s *Service) filterUnknownCategories(ctx context.Context, rows []csvRow) ([]csvRow, []rowError, error) {
	if len(rows) == 0 {
		return rows, nil, nil
	}

	seen := make(map[int64]bool)
	ids := make([]int64, 0)
	for _, row := range rows {
		id := int64(row.product.CategoryID)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	existing, err := s.categoryRepository.ExistingIDs(ctx, ids)
	if err != nil {
		logrus.WithError(err).Error("Erro ao verificar categorias do CSV")
		return nil, nil, NewCatalogError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}

	valid := make([]csvRow, 0, len(rows))
	var errs []rowError
	for _, row := range rows {
		if !existing[int64(row.product.CategoryID)] {
			errs = append(errs, rowError{line: row.line, message: fmt.Sprintf("Categoria ID %d não existe", row.product.CategoryID)})
			continue
		}
		valid = append(valid, row)
	}

	return valid, errs, nil
}

package salesclient

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func (c *SalesClient) CreateCategory(ctx context.Context, name string) (*domain.CategoryCreated, error) {
	var created domain.CategoryCreated
	body := domain.NewCategory{Name: name}
	if err := c.doJSON(ctx, http.MethodPost, "/create-category", nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *SalesClient) CreateProduct(ctx context.Context, product domain.NewProduct) (*domain.ProductCreated, error) {
	var created domain.ProductCreated
	if err := c.doJSON(ctx, http.MethodPost, "/add-product", nil, product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *SalesClient) UpdateProduct(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.ProductUpdated, error) {
	var updated domain.ProductUpdated
	p := "/products/" + strconv.FormatInt(id, 10)
	if err := c.doJSON(ctx, http.MethodPut, p, nil, update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UploadProductsCSV envia o arquivo como multipart no campo "file"
func (c *SalesClient) UploadProductsCSV(ctx context.Context, filename string, content io.Reader) (*domain.ImportResult, error) {
	target, err := c.endpoint("/upload-csv", nil)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Message: err.Error(), Err: err}
	}

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, pr)
	if err != nil {
		_ = pr.Close()
		return nil, &APIError{Kind: KindTransport, Message: fmt.Sprintf("erro ao criar a requisição: %v", err), Err: err}
	}
	defer pr.Close()
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var result domain.ImportResult
	if err := c.send(req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

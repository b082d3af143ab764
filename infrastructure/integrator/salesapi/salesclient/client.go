package salesclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client consome a API de vendas. Todo erro devolvido é um *APIError.
type Client interface {
	GetSalesReport(ctx context.Context, categoryID *int64) (*domain.SalesReport, error)
	GetCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.CategoryCreated, error)
	CreateProduct(ctx context.Context, product domain.NewProduct) (*domain.ProductCreated, error)
	UpdateProduct(ctx context.Context, id int64, update domain.ProductUpdate) (*domain.ProductUpdated, error)
	UpdateMonthlySales(ctx context.Context, key domain.MonthKey, update domain.MonthlySalesUpdate) (*domain.MonthlySalesUpdateResult, error)
	UploadProductsCSV(ctx context.Context, filename string, content io.Reader) (*domain.ImportResult, error)
	Export(ctx context.Context, exportType domain.ExportType, w io.Writer) error
}

type SalesClient struct {
	httpClient *http.Client
	baseURL    string
	location   *time.Location
}

type Option func(*SalesClient)

// WithLocation define o fuso usado para ler datas de venda sem fuso
func WithLocation(loc *time.Location) Option {
	return func(c *SalesClient) {
		if loc != nil {
			c.location = loc
		}
	}
}

func NewClient(cfg config.Dashboard, opts ...Option) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &SalesClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.APIURL, "/"),
		location:   time.UTC,
	}
	for _, opt := range opts {
		opt(client)
	}

	return client
}

func (c *SalesClient) endpoint(p string, query url.Values) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	u.Path = path.Join(u.Path, p)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

// request monta a requisição com corpo JSON opcional
func (c *SalesClient) request(ctx context.Context, method, p string, query url.Values, body any) (*http.Request, error) {
	target, err := c.endpoint(p, query)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar a requisição: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// send executa a requisição, classifica falhas e decodifica a resposta em out
func (c *SalesClient) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return malformedError(err)
	}

	return nil
}

func (c *SalesClient) doJSON(ctx context.Context, method, p string, query url.Values, body, out any) error {
	req, err := c.request(ctx, method, p, query, body)
	if err != nil {
		return &APIError{Kind: KindTransport, Message: err.Error(), Err: err}
	}

	return c.send(req, out)
}

package salesclient

import (
	"context"
	"io"
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Export copia o CSV exportado pela API para w
func (c *SalesClient) Export(ctx context.Context, exportType domain.ExportType, w io.Writer) error {
	req, err := c.request(ctx, http.MethodGet, "/export/"+string(exportType), nil, nil)
	if err != nil {
		return &APIError{Kind: KindTransport, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return transportError(err)
	}

	return nil
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	reportKeyPrefix  = "sales-report"
	reportVersionKey = "sales-report:version"
)

// ReportCache guarda relatórios de vendas por filtro. Invalidate descarta todas as entradas.
type ReportCache interface {
	GetReport(ctx context.Context, filter domain.ReportFilter) (*domain.SalesReport, bool, error)
	SetReport(ctx context.Context, filter domain.ReportFilter, report *domain.SalesReport) error
	Invalidate(ctx context.Context) error
}

// RedisReportCache versiona as chaves: invalidar é incrementar a versão,
// e as entradas antigas expiram pelo TTL.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{client: client, ttl: ttl}
}

func (c *RedisReportCache) version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, reportVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return ver, err
}

func (c *RedisReportCache) key(ctx context.Context, filter domain.ReportFilter) (string, error) {
	ver, err := c.version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d:%s", reportKeyPrefix, ver, filter.CacheKey()), nil
}

func (c *RedisReportCache) GetReport(ctx context.Context, filter domain.ReportFilter) (*domain.SalesReport, bool, error) {
	key, err := c.key(ctx, filter)
	if err != nil {
		return nil, false, err
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var report domain.SalesReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("relatório em cache corrompido: %w", err)
	}

	return &report, true, nil
}

func (c *RedisReportCache) SetReport(ctx context.Context, filter domain.ReportFilter, report *domain.SalesReport) error {
	key, err := c.key(ctx, filter)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, reportVersionKey).Err()
}

// Package cache guarda en Redis la respuesta de alertas de stock bajo por empresa.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/pkg/config"
)

const (
	alertKeyPrefix      = "stockflow:alerts:low_stock"
	generationKeyPrefix = "stockflow:alerts:generation"
	alertScanBatchSize  = 100
)

var (
	_ ports.AlertCache = (*RedisAlertCache)(nil)
	_ ports.AlertCache = NoopAlertCache{}
)

// RedisAlertCache caché de alertas en Redis con TTL.
type RedisAlertCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NoopAlertCache caché deshabilitado: nunca hay hit.
type NoopAlertCache struct{}

// NewAlertCache devuelve el caché de Redis si está habilitado, o NoopAlertCache.
func NewAlertCache(ctx context.Context, cfg config.CacheConfig) (ports.AlertCache, error) {
	if !cfg.Enabled {
		return NoopAlertCache{}, nil
	}
	client, ttl, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRedisAlertCache(client, ttl), nil
}

// NewRedisAlertCache construye el caché sobre un cliente existente.
func NewRedisAlertCache(client *redis.Client, ttl time.Duration) *RedisAlertCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisAlertCache{client: client, ttl: ttl}
}

// AlertKey clave de Redis de las alertas de una empresa.
func AlertKey(companyID string) string {
	return fmt.Sprintf("%s:%s", alertKeyPrefix, companyID)
}

// GenerationKey clave del contador de invalidaciones de una empresa.
func GenerationKey(companyID string) string {
	return fmt.Sprintf("%s:%s", generationKeyPrefix, companyID)
}

// cachedAlerts valor guardado: la respuesta y la generación con la que se calculó.
type cachedAlerts struct {
	Generation int64                       `json:"generation"`
	Response   *dto.LowStockAlertsResponse `json:"response"`
}

// EncodeEntry serializa la respuesta con su generación.
func EncodeEntry(generation int64, resp *dto.LowStockAlertsResponse) ([]byte, error) {
	payload, err := json.Marshal(cachedAlerts{Generation: generation, Response: resp})
	if err != nil {
		return nil, fmt.Errorf("encode alerts cache: %w", err)
	}
	return payload, nil
}

// DecodeEntry devuelve la respuesta solo si fue calculada en la generación current.
// Una entrada de una generación anterior se trata como miss.
func DecodeEntry(payload []byte, current int64) (*dto.LowStockAlertsResponse, bool, error) {
	var entry cachedAlerts
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, false, fmt.Errorf("decode alerts cache: %w", err)
	}
	if entry.Generation != current || entry.Response == nil {
		return nil, false, nil
	}
	if entry.Response.Alerts == nil {
		entry.Response.Alerts = []dto.LowStockAlertDTO{}
	}
	return entry.Response, true, nil
}

func (c *RedisAlertCache) Generation(ctx context.Context, companyID string) (int64, error) {
	gen, err := c.client.Get(ctx, GenerationKey(companyID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

func (c *RedisAlertCache) Get(ctx context.Context, companyID string) (*dto.LowStockAlertsResponse, bool, error) {
	vals, err := c.client.MGet(ctx, AlertKey(companyID), GenerationKey(companyID)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis mget failed: %w", err)
	}
	payload, ok := vals[0].(string)
	if !ok {
		return nil, false, nil
	}
	var current int64
	if raw, ok := vals[1].(string); ok {
		gen, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, false, fmt.Errorf("decode alerts generation: %w", err)
		}
		current = gen
	}
	return DecodeEntry([]byte(payload), current)
}

func (c *RedisAlertCache) Set(ctx context.Context, companyID string, generation int64, resp *dto.LowStockAlertsResponse) error {
	payload, err := EncodeEntry(generation, resp)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, AlertKey(companyID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Invalidate incrementa la generación y borra la entrada. Un cálculo que empezó antes y termina
// después queda guardado con la generación vieja y Get lo ignora.
func (c *RedisAlertCache) Invalidate(ctx context.Context, companyID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(companyID))
		pipe.Del(ctx, AlertKey(companyID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}
	return nil
}

// InvalidateAll borra las alertas cacheadas de todas las empresas (tras un seed masivo).
// Los contadores de generación se conservan.
func (c *RedisAlertCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, alertKeyPrefix, alertScanBatchSize)
}

// Close cierra el cliente de Redis.
func (c *RedisAlertCache) Close() error {
	return c.client.Close()
}

func (NoopAlertCache) Generation(context.Context, string) (int64, error) { return 0, nil }

func (NoopAlertCache) Get(context.Context, string) (*dto.LowStockAlertsResponse, bool, error) {
	return nil, false, nil
}

func (NoopAlertCache) Set(context.Context, string, int64, *dto.LowStockAlertsResponse) error {
	return nil
}

func (NoopAlertCache) Invalidate(context.Context, string) error { return nil }

// Package cache implementa sobre Redis el caché del agregado de rango de
// precios de productos variables.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Catalogo-api/internal/application/pricing"
	"github.com/jhoicas/Catalogo-api/internal/domain/entity"
	"github.com/jhoicas/Catalogo-api/pkg/config"
)

var _ pricing.RangeCache = (*PriceRangeCache)(nil)

// PriceRangeCache caché Redis del agregado min/max. La clave incorpora el
// rol: un rango calculado para un rol jamás se sirve a otro.
type PriceRangeCache struct {
	db  *redis.Client
	ttl time.Duration
}

// New conecta a Redis y construye el caché.
func New(ctx context.Context, cfg config.RedisConfig) (*PriceRangeCache, error) {
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})
	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &PriceRangeCache{db: db, ttl: cfg.TTL}, nil
}

// rangeKey clave del agregado por (producto, rol) — el rol forma parte de la
// clave de caché de precios del catálogo.
func rangeKey(productID string, role entity.Role) string {
	return fmt.Sprintf("price_range:%s:%s", productID, role)
}

// GetRange lee el rango cacheado. Miss (redis.Nil) → ok=false sin error.
func (c *PriceRangeCache) GetRange(ctx context.Context, productID string, role entity.Role) (*entity.PriceRange, bool, error) {
	val, err := c.db.Get(ctx, rangeKey(productID, role)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	var r entity.PriceRange
	if err := json.Unmarshal([]byte(val), &r); err != nil {
		// Entrada corrupta: tratar como miss, se recalcula.
		return nil, false, nil
	}
	return &r, true, nil
}

// SetRange guarda el rango con TTL.
func (c *PriceRangeCache) SetRange(ctx context.Context, productID string, role entity.Role, r entity.PriceRange) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.db.Set(ctx, rangeKey(productID, role), raw, c.ttl).Err()
}

// DeleteRanges borra las claves del producto para todos los roles dados
// (marca sucio el agregado; la próxima lectura recalcula).
func (c *PriceRangeCache) DeleteRanges(ctx context.Context, productID string, roles []entity.Role) error {
	if len(roles) == 0 {
		return nil
	}
	keys := make([]string, 0, len(roles))
	for _, role := range roles {
		keys = append(keys, rangeKey(productID, role))
	}
	return c.db.Del(ctx, keys...).Err()
}

// Close cierra la conexión.
func (c *PriceRangeCache) Close() error {
	return c.db.Close()
}

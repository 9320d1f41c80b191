package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/afrobeatles/fanstore/internal/metrics"
	"github.com/afrobeatles/fanstore/pkg/model"
)

const (
	keyProduct = "provision:product"
	keyPriceID = "provision:price_id"
)

// Redis is a Store backed by Redis, for deployments running more than one
// replica. Same slot semantics as Memory; Redis errors are logged and
// reported as a miss.
type Redis struct {
	rdb        *redis.Client
	logger     *zap.Logger
	productTTL time.Duration
	priceTTL   time.Duration
}

// NewRedis connects to Redis and returns a Redis-backed provision cache.
func NewRedis(addr string, db int, productTTL, priceTTL time.Duration, logger *zap.Logger) (*Redis, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{
		rdb:        rdb,
		logger:     logger,
		productTTL: productTTL,
		priceTTL:   priceTTL,
	}, nil
}

func (r *Redis) PutProduct(ctx context.Context, p model.Product) {
	r.setJSON(ctx, keyProduct, p, r.productTTL)
}

func (r *Redis) Product(ctx context.Context) (*model.Product, bool) {
	var p model.Product
	ok := r.getJSON(ctx, keyProduct, &p)
	metrics.IncCache("product", ok)
	if !ok {
		return nil, false
	}
	return &p, true
}

func (r *Redis) PutPriceID(ctx context.Context, id string) {
	r.setJSON(ctx, keyPriceID, id, r.priceTTL)
}

func (r *Redis) PriceID(ctx context.Context) (string, bool) {
	var id string
	ok := r.getJSON(ctx, keyPriceID, &id)
	metrics.IncCache("price_id", ok)
	if !ok {
		return "", false
	}
	return id, true
}

func (r *Redis) Clear(ctx context.Context) {
	if err := r.rdb.Del(ctx, keyProduct, keyPriceID).Err(); err != nil {
		r.logger.Warn("cache.redis_clear_failed", zap.Error(err))
	}
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// HealthCheck pings Redis; used by the /health endpoint.
func (r *Redis) HealthCheck(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *Redis) setJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn("cache.redis_marshal_failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Warn("cache.redis_set_failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *Redis) getJSON(ctx context.Context, key string, dest any) bool {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		r.logger.Warn("cache.redis_get_failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		r.logger.Warn("cache.redis_decode_failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &Redis{
		rdb:        rdb,
		logger:     zap.NewNop(),
		productTTL: 10 * time.Minute,
		priceTTL:   100 * time.Minute,
	}, mr
}

func TestRedis_PutAndGetProduct(t *testing.T) {
	ctx := context.Background()
	st, mr := newTestRedis(t)
	defer mr.Close()

	if _, ok := st.Product(ctx); ok {
		t.Fatal("expected miss on empty cache")
	}

	st.PutProduct(ctx, sampleProduct())

	p, ok := st.Product(ctx)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if p.ID != "prod_123" {
		t.Errorf("expected id=prod_123, got %s", p.ID)
	}
	if p.Price == nil || p.Price.UnitAmount != 2500 {
		t.Error("expected attached price to survive the round trip")
	}
}

func TestRedis_PriceIDExpiry(t *testing.T) {
	ctx := context.Background()
	st, mr := newTestRedis(t)
	defer mr.Close()

	st.PutPriceID(ctx, "price_456")

	if id, ok := st.PriceID(ctx); !ok || id != "price_456" {
		t.Fatalf("expected price_456 hit, got %q ok=%v", id, ok)
	}

	// miniredis advances TTLs manually
	mr.FastForward(101 * time.Minute)

	if _, ok := st.PriceID(ctx); ok {
		t.Error("expected price id expired")
	}
}

func TestRedis_Clear(t *testing.T) {
	ctx := context.Background()
	st, mr := newTestRedis(t)
	defer mr.Close()

	st.PutProduct(ctx, sampleProduct())
	st.PutPriceID(ctx, "price_456")
	st.Clear(ctx)

	if _, ok := st.Product(ctx); ok {
		t.Error("expected product slot cleared")
	}
	if _, ok := st.PriceID(ctx); ok {
		t.Error("expected price id slot cleared")
	}
}

func TestRedis_BackendFailureIsMiss(t *testing.T) {
	ctx := context.Background()
	st, mr := newTestRedis(t)

	st.PutProduct(ctx, sampleProduct())
	mr.Close()

	// A dead backend degrades to a miss so callers fall into the
	// recompute path instead of failing the request.
	if _, ok := st.Product(ctx); ok {
		t.Error("expected miss when redis is down")
	}
}

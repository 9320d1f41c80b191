package cache

import (
	"context"
	"sync"
	"time"

	"github.com/afrobeatles/fanstore/internal/metrics"
	"github.com/afrobeatles/fanstore/pkg/model"
)

// Store is the provision cache: one slot for the provisioned product and one
// for the derived price id, each with its own expiry. Implementations must be
// safe for concurrent single-slot access; backend failures degrade to a miss
// so workflows always have a recompute path.
type Store interface {
	PutProduct(ctx context.Context, p model.Product)
	Product(ctx context.Context) (*model.Product, bool)
	PutPriceID(ctx context.Context, id string)
	PriceID(ctx context.Context) (string, bool)
	Clear(ctx context.Context)
}

type slot[T any] struct {
	value      T
	expiration time.Time
	set        bool
}

func (s *slot[T]) get(now time.Time) (T, bool) {
	var zero T
	if !s.set || now.After(s.expiration) {
		return zero, false
	}
	return s.value, true
}

func (s *slot[T]) put(v T, ttl time.Duration) {
	s.value = v
	s.expiration = time.Now().Add(ttl)
	s.set = true
}

func (s *slot[T]) clear() {
	var zero T
	s.value = zero
	s.set = false
}

// Memory is the in-process Store with an explicit slot per cached item.
type Memory struct {
	mu         sync.RWMutex
	product    slot[model.Product]
	priceID    slot[string]
	productTTL time.Duration
	priceTTL   time.Duration
}

// NewMemory creates an in-memory provision cache with per-slot TTLs.
func NewMemory(productTTL, priceTTL time.Duration) *Memory {
	return &Memory{
		productTTL: productTTL,
		priceTTL:   priceTTL,
	}
}

func (m *Memory) PutProduct(_ context.Context, p model.Product) {
	m.mu.Lock()
	m.product.put(p, m.productTTL)
	m.mu.Unlock()
}

func (m *Memory) Product(_ context.Context) (*model.Product, bool) {
	m.mu.RLock()
	p, ok := m.product.get(time.Now())
	m.mu.RUnlock()
	metrics.IncCache("product", ok)
	if !ok {
		return nil, false
	}
	return &p, true
}

func (m *Memory) PutPriceID(_ context.Context, id string) {
	m.mu.Lock()
	m.priceID.put(id, m.priceTTL)
	m.mu.Unlock()
}

func (m *Memory) PriceID(_ context.Context) (string, bool) {
	m.mu.RLock()
	id, ok := m.priceID.get(time.Now())
	m.mu.RUnlock()
	metrics.IncCache("price_id", ok)
	return id, ok
}

func (m *Memory) Clear(_ context.Context) {
	m.mu.Lock()
	m.product.clear()
	m.priceID.clear()
	m.mu.Unlock()
}

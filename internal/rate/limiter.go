package rate

import (
	"context"
	"sync"
	"time"
)

// Config sets the steady request rate and burst headroom for one upstream.
type Config struct {
	RequestsPerSecond int
	Burst             int
}

// Limiter is a token bucket. Tokens refill continuously at the configured
// rate up to the burst cap; each allowed call spends one.
type Limiter struct {
	mu       sync.Mutex
	tokens   float64
	refilled time.Time
	perSec   float64
	burst    float64
}

// New creates a limiter starting with a full bucket.
func New(cfg Config) *Limiter {
	return &Limiter{
		tokens:   float64(cfg.Burst),
		refilled: time.Now(),
		perSec:   float64(cfg.RequestsPerSecond),
		burst:    float64(cfg.Burst),
	}
}

// Allow spends a token if one is available.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.tokens += now.Sub(l.refilled).Seconds() * l.perSec
	l.refilled = now
	if l.tokens > l.burst {
		l.tokens = l.burst
	}

	if l.tokens < 1 {
		return false
	}
	l.tokens--
	return true
}

// Wait blocks until a token is available or ctx is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		if l.Allow() {
			return nil
		}
		select {
		case <-time.After(50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Manager lazily creates one Limiter per key so each upstream host gets an
// independent bucket.
type Manager struct {
	mu       sync.RWMutex
	limiters map[string]*Limiter
	defaults Config
}

func NewManager(defaults Config) *Manager {
	return &Manager{
		limiters: make(map[string]*Limiter),
		defaults: defaults,
	}
}

func (m *Manager) GetLimiter(key string) *Limiter {
	m.mu.RLock()
	if lim, ok := m.limiters[key]; ok {
		m.mu.RUnlock()
		return lim
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if lim, ok := m.limiters[key]; ok {
		return lim
	}
	lim := New(m.defaults)
	m.limiters[key] = lim
	return lim
}

// Wait blocks on the limiter for key.
func (m *Manager) Wait(ctx context.Context, key string) error {
	return m.GetLimiter(key).Wait(ctx)
}

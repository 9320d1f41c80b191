package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds the core runtime configuration for a service instance.
// It supports environment-based initialization, with sensible defaults.
type Config struct {
	ServiceName string // e.g. "fanstore"
	Env         string // e.g. "dev", "uat", "prod"
	LogLevel    string // "debug", "info", etc.
	Port        int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	HTTPBodyLimit    int

	// Stripe configuration. The secret key is read from the environment,
	// or resolved from AWS Secrets Manager when StripeSecretName is set.
	// See internal/secrets/resolver.go.
	StripeSecretKey  string
	StripeSecretName string
	StripeAPIBase    string
	AWSRegion        string

	// ChallengeID is used both as the product's unique URL and the price's
	// lookup key, tying one product to one price deterministically.
	ChallengeID string

	// StaticDir holds the frontend assets. When it contains an index.html
	// the vanilla frontend is served, otherwise the react redirect page.
	StaticDir string

	ProductCacheTTL time.Duration // provisioned product slot expiry
	PriceCacheTTL   time.Duration // derived price-id slot expiry

	SessionPageLimit int // cap on checkout sessions fetched per leaderboard request
	LinkPageLimit    int // cap on payment links listed per dedup lookup

	// Optional backends. A cache backed by Redis is used when RedisAddr is
	// set; link-created events are published when NATSURL is set.
	RedisAddr       string
	RedisDB         int
	NATSURL         string
	OutboundSubject string
}

// Load loads configuration from environment variables and .env file if present.
func Load() *Config {
	// load .env silently (no error if missing)
	_ = godotenv.Load()

	cfg := &Config{
		ServiceName:      GetEnv("SERVICE_NAME", "fanstore"),
		Env:              GetEnv("ENV", "dev"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		Port:             GetEnvInt("PORT", 4242),
		HTTPReadTimeout:  GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: GetEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		HTTPIdleTimeout:  GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		HTTPBodyLimit:    GetEnvInt("HTTP_BODY_LIMIT", 1*1024*1024),
		StripeSecretKey:  GetEnv("STRIPE_SECRET_KEY", ""),
		StripeSecretName: GetEnv("STRIPE_SECRET_NAME", ""),
		StripeAPIBase:    GetEnv("STRIPE_API_BASE", "https://api.stripe.com"),
		AWSRegion:        GetEnv("AWS_REGION", "us-east-2"),
		ChallengeID:      GetEnv("CHALLENGE_ID", ""),
		StaticDir:        GetEnv("STATIC_DIR", "../client"),
		ProductCacheTTL:  GetEnvDuration("PRODUCT_CACHE_TTL", 10*time.Minute),
		PriceCacheTTL:    GetEnvDuration("PRICE_CACHE_TTL", 100*time.Minute),
		SessionPageLimit: GetEnvInt("SESSION_PAGE_LIMIT", 500),
		LinkPageLimit:    GetEnvInt("LINK_PAGE_LIMIT", 100),
		RedisAddr:        GetEnv("REDIS_ADDR", ""),
		RedisDB:          GetEnvInt("REDIS_DB", 0),
		NATSURL:          GetEnv("NATS_URL", ""),
		OutboundSubject:  GetEnv("OUTBOUND_SUBJECT", "evt.fanstore.payment_link.v1"),
	}

	return cfg
}

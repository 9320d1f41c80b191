package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"

	"github.com/afrobeatles/fanstore/internal/api"
	"github.com/afrobeatles/fanstore/internal/cache"
	"github.com/afrobeatles/fanstore/internal/catalog"
	"github.com/afrobeatles/fanstore/internal/leaderboard"
	"github.com/afrobeatles/fanstore/internal/paylink"
	"github.com/afrobeatles/fanstore/internal/provision"
	"github.com/afrobeatles/fanstore/internal/publisher"
	"github.com/afrobeatles/fanstore/internal/rate"
	internalsecrets "github.com/afrobeatles/fanstore/internal/secrets"
	"github.com/afrobeatles/fanstore/internal/stripe"
	"github.com/afrobeatles/fanstore/pkg/config"
	"github.com/afrobeatles/fanstore/pkg/logger"
	"github.com/afrobeatles/fanstore/pkg/secrets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Load configuration ---
	cfg := config.Load()

	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer logger.Sync()
	logg := logger.S()
	logg.Info("starting [fanstore]...")

	if cfg.ChallengeID == "" {
		logg.Fatal("CHALLENGE_ID is required; it identifies the product and price remotely")
	}

	// --- Resolve Stripe secret key (env or AWS Secrets Manager) ---
	stripeKey := cfg.StripeSecretKey
	if cfg.StripeSecretName != "" {
		awsProvider, err := secrets.NewAWSProvider(cfg.AWSRegion)
		if err != nil {
			logg.Fatalw("failed to create AWS Secrets Manager provider", "error", err)
		}
		stripeKey, err = internalsecrets.ResolveStripeKey(ctx, logg.Desugar(), awsProvider, cfg.StripeSecretName, cfg.StripeSecretKey)
		if err != nil {
			logg.Fatalw("failed to resolve Stripe secret key", "error", err)
		}
	}
	if stripeKey == "" {
		logg.Fatal("no Stripe secret key configured (STRIPE_SECRET_KEY or STRIPE_SECRET_NAME)")
	}

	// --- Rate limiter ---
	rateMgr := rate.NewManager(rate.Config{
		RequestsPerSecond: 25, // Stripe allows 25 rps in test mode
		Burst:             50,
	})

	// --- Stripe client + catalog gateway ---
	stripeClient := stripe.NewClient(logg.Desugar(), rateMgr, cfg.StripeAPIBase, stripeKey)
	gateway := catalog.New(logg.Desugar(), stripeClient)

	// --- Provision cache (Redis when configured, in-memory otherwise) ---
	var st cache.Store
	var backend api.HealthChecker
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisDB, cfg.ProductCacheTTL, cfg.PriceCacheTTL, logg.Desugar())
		if err != nil {
			logg.Fatalw("failed to init redis cache", "error", err)
		}
		defer func() { _ = redisCache.Close() }()
		st = redisCache
		backend = redisCache
	} else {
		st = cache.NewMemory(cfg.ProductCacheTTL, cfg.PriceCacheTTL)
	}

	// --- Provisioning (idempotent bootstrap) ---
	prov := provision.New(logg.Desugar(), gateway, st, cfg.ChallengeID)
	if err := prov.Run(ctx); err != nil {
		logg.Fatalw("provisioning failed at boot", "error", err)
	}

	// --- Event publisher (optional) ---
	var pub *publisher.Publisher
	var nc *nats.Conn
	if cfg.NATSURL != "" {
		var err error
		nc, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logg.Fatalw("failed to connect to NATS", "error", err)
		}
		pub, err = publisher.New(nc, cfg.OutboundSubject, cfg.ServiceName)
		if err != nil {
			logg.Fatalw("failed to init publisher", "error", err)
		}
	}

	// --- Workflows ---
	linkSvc := paylink.NewService(logg.Desugar(), stripeClient, gateway, st, pub, cfg.ChallengeID, cfg.LinkPageLimit)
	leaderSvc := leaderboard.NewService(logg.Desugar(), stripeClient, cfg.SessionPageLimit)

	// --- Fiber HTTP server ---
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
		BodyLimit:    cfg.HTTPBodyLimit,
	})

	handler := api.NewHandler(logg.Desugar(), linkSvc, leaderSvc)
	pages := api.NewPages(cfg.StaticDir)
	api.RegisterRoutes(app, handler, pages, st, backend)

	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Fatalw("fiber.listen_failed", "error", err)
		}
	}()

	logg.Infow("[fanstore] running",
		"env", cfg.Env,
		"challenge_id", cfg.ChallengeID,
		"frontend", map[bool]string{true: "vanilla", false: "react"}[pages.Vanilla()],
		"redis", cfg.RedisAddr != "",
		"nats", cfg.NATSURL != "")

	<-ctx.Done()
	logg.Info("shutting down [fanstore]...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
	if nc != nil {
		if err := nc.Drain(); err != nil {
			logg.Warnw("nats.drain_failed", "error", err)
		}
	}
}

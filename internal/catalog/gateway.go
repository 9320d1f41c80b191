package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/afrobeatles/fanstore/internal/stripe"
	"github.com/afrobeatles/fanstore/pkg/model"
)

// Gateway wraps the Stripe product/price endpoints behind find-or-create
// semantics. Lookups treat every remote failure as absence (logged, not
// raised); creates propagate errors to the caller.
type Gateway struct {
	logger *zap.Logger
	client *stripe.Client
}

// New constructs a catalog gateway over the given Stripe client.
func New(logger *zap.Logger, client *stripe.Client) *Gateway {
	return &Gateway{
		logger: logger,
		client: client,
	}
}

// FindProduct looks up at most one remote product matching the unique URL.
// Returns nil when no product matches or the remote call fails.
func (g *Gateway) FindProduct(ctx context.Context, productURL string) *model.Product {
	resp, err := g.client.FindProductByURL(ctx, productURL)
	if err != nil {
		g.logger.Warn("catalog.find_product_failed",
			zap.String("url", productURL),
			zap.Error(err))
		return nil
	}
	if len(resp.Data) == 0 {
		return nil
	}

	product := stripe.ToModelProduct(resp.Data[0])
	return &product
}

// FindPrice looks up at most one price for a product matching the lookup key.
// Returns nil when no price matches or the remote call fails.
func (g *Gateway) FindPrice(ctx context.Context, productID, lookupKey string) *model.Price {
	resp, err := g.client.ListPrices(ctx, productID, lookupKey)
	if err != nil {
		g.logger.Warn("catalog.find_price_failed",
			zap.String("product_id", productID),
			zap.String("lookup_key", lookupKey),
			zap.Error(err))
		return nil
	}
	if len(resp.Data) == 0 {
		return nil
	}

	price := stripe.ToModelPrice(resp.Data[0])
	return &price
}

// CreateProduct creates a remote product identified by the unique URL.
// The returned product has no price attached yet.
func (g *Gateway) CreateProduct(ctx context.Context, name, description, productURL string) (*model.Product, error) {
	resp, err := g.client.CreateProduct(ctx, name, description, productURL)
	if err != nil {
		return nil, err
	}

	product := stripe.ToModelProduct(*resp)
	g.logger.Info("catalog.product_created",
		zap.String("product_id", product.ID),
		zap.String("url", productURL))
	return &product, nil
}

// CreatePrice creates a remote price that can later be re-identified by
// lookup key alone.
func (g *Gateway) CreatePrice(ctx context.Context, productID string, unitAmount int64, currency, nickname, lookupKey string) (*model.Price, error) {
	resp, err := g.client.CreatePrice(ctx, productID, unitAmount, currency, nickname, lookupKey)
	if err != nil {
		return nil, err
	}

	price := stripe.ToModelPrice(*resp)
	g.logger.Info("catalog.price_created",
		zap.String("price_id", price.ID),
		zap.String("lookup_key", lookupKey),
		zap.Int64("unit_amount", unitAmount))
	return &price, nil
}

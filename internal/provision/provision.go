package provision

import (
	"context"

	"go.uber.org/zap"

	"github.com/afrobeatles/fanstore/internal/cache"
	"github.com/afrobeatles/fanstore/internal/catalog"
	"github.com/afrobeatles/fanstore/pkg/model"
)

// Fixed commemorative item sold by this storefront.
const (
	ProductName        = "The Afrobeatles T-Shirt"
	ProductDescription = "Afrobeatles Tour"
	ProductCost        = 2500
	ProductCurrency    = "usd"
)

// Workflow ensures exactly one remote product and one remote price exist for
// the challenge identifier, which serves both as the product's unique URL and
// the price's lookup key. Safe to re-run: lookup always precedes creation.
type Workflow struct {
	logger      *zap.Logger
	gateway     *catalog.Gateway
	cache       cache.Store
	challengeID string
}

// New constructs the provisioning workflow.
func New(logger *zap.Logger, gateway *catalog.Gateway, store cache.Store, challengeID string) *Workflow {
	return &Workflow{
		logger:      logger,
		gateway:     gateway,
		cache:       store,
		challengeID: challengeID,
	}
}

// Run executes the find-or-create bootstrap and publishes the fully resolved
// product into the cache. Creation failures are returned to the caller, which
// decides how to handle a failed boot. A missing product+price pair without a
// hard error is a degraded state: logged, and the process keeps serving.
func (w *Workflow) Run(ctx context.Context) error {
	// Invalidate any stale provisioned state first.
	w.cache.Clear(ctx)

	product := w.gateway.FindProduct(ctx, w.challengeID)
	var price *model.Price
	var err error

	if product != nil {
		price = w.gateway.FindPrice(ctx, product.ID, w.challengeID)
		if price == nil {
			price, err = w.gateway.CreatePrice(ctx, product.ID, ProductCost, ProductCurrency, ProductName, w.challengeID)
			if err != nil {
				w.logger.Error("provision.create_price_failed", zap.Error(err))
				return err
			}
		}
	} else {
		product, err = w.gateway.CreateProduct(ctx, ProductName, ProductDescription, w.challengeID)
		if err != nil {
			w.logger.Error("provision.create_product_failed", zap.Error(err))
			return err
		}
		price, err = w.gateway.CreatePrice(ctx, product.ID, ProductCost, ProductCurrency, ProductName, w.challengeID)
		if err != nil {
			w.logger.Error("provision.create_price_failed", zap.Error(err))
			return err
		}
	}

	if product == nil || price == nil {
		w.logger.Warn("provision.incomplete",
			zap.String("challenge_id", w.challengeID),
			zap.Bool("have_product", product != nil),
			zap.Bool("have_price", price != nil))
		return nil
	}

	product.Price = price
	w.cache.PutProduct(ctx, *product)

	w.logger.Info("provision.complete",
		zap.String("product_id", product.ID),
		zap.String("price_id", price.ID),
		zap.String("challenge_id", w.challengeID))
	return nil
}

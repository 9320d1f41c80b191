package paylink

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/afrobeatles/fanstore/internal/cache"
	"github.com/afrobeatles/fanstore/internal/catalog"
	"github.com/afrobeatles/fanstore/internal/metrics"
	"github.com/afrobeatles/fanstore/internal/publisher"
	"github.com/afrobeatles/fanstore/internal/stripe"
	"github.com/afrobeatles/fanstore/pkg/model"
)

// emailRegex is a superficial format check only, not deliverability
// verification: dot/hyphen-separated local part, domain, 2-3 char TLD.
var emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidateEmail reports whether the input is a syntactically valid email.
// One payment link is created per email, so malformed input is rejected
// before any remote call.
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// EventLinkCreated is published when a new payment link is created for a fan.
const EventLinkCreated = "payment_link.created"

// Service returns a payment link URL for a fan, reusing an existing active
// link for the same {email, display name} metadata pair when one exists.
type Service struct {
	logger        *zap.Logger
	client        *stripe.Client
	gateway       *catalog.Gateway
	cache         cache.Store
	pub           *publisher.Publisher
	challengeID   string
	linkPageLimit int
}

// NewService constructs the payment-link workflow.
func NewService(
	logger *zap.Logger,
	client *stripe.Client,
	gateway *catalog.Gateway,
	store cache.Store,
	pub *publisher.Publisher,
	challengeID string,
	linkPageLimit int,
) *Service {
	return &Service{
		logger:        logger,
		client:        client,
		gateway:       gateway,
		cache:         store,
		pub:           pub,
		challengeID:   challengeID,
		linkPageLimit: linkPageLimit,
	}
}

// CreateLink validates the fan's email, resolves the provisioned price and
// returns the URL of an existing or newly created payment link.
func (s *Service) CreateLink(ctx context.Context, email, displayName string) (string, error) {
	if !ValidateEmail(email) {
		return "", fmt.Errorf("email address is not valid")
	}

	priceID, err := s.resolvePriceID(ctx)
	if err != nil {
		return "", err
	}

	resp, err := s.client.ListPaymentLinks(ctx, s.linkPageLimit)
	if err != nil {
		return "", fmt.Errorf("list payment links: %w", err)
	}

	for _, link := range resp.Data {
		if link.Active && metadataMatches(link.Metadata, email, displayName) {
			s.logger.Info("paylink.reused",
				zap.String("link_id", link.ID),
				zap.String("fan_email", email))
			metrics.PaymentLinksTotal.WithLabelValues("reused").Inc()
			return link.URL, nil
		}
	}

	metadata := map[string]string{
		model.MetaFanEmail: email,
		model.MetaFanName:  displayName,
	}
	created, err := s.client.CreatePaymentLink(ctx, priceID, 1, metadata)
	if err != nil {
		return "", fmt.Errorf("create payment link: %w", err)
	}

	s.logger.Info("paylink.created",
		zap.String("link_id", created.ID),
		zap.String("fan_email", email),
		zap.String("price_id", priceID))
	metrics.PaymentLinksTotal.WithLabelValues("created").Inc()

	// Best-effort event; a publish failure never fails the request.
	if err := s.pub.Publish(ctx, EventLinkCreated, stripe.ToModelPaymentLink(*created)); err != nil {
		s.logger.Warn("paylink.publish_failed", zap.Error(err))
	}

	return created.URL, nil
}

// resolvePriceID returns the provisioned price id, cache-first. On a miss the
// product is taken from the cache or looked up remotely, then its price is
// resolved by lookup key and the id re-cached.
func (s *Service) resolvePriceID(ctx context.Context) (string, error) {
	if id, ok := s.cache.PriceID(ctx); ok {
		return id, nil
	}

	product, ok := s.cache.Product(ctx)
	if !ok {
		product = s.gateway.FindProduct(ctx, s.challengeID)
	}
	if product == nil {
		return "", fmt.Errorf("no product provisioned for challenge %q", s.challengeID)
	}

	price := s.gateway.FindPrice(ctx, product.ID, s.challengeID)
	if price == nil {
		return "", fmt.Errorf("no price found for product %q with lookup key %q", product.ID, s.challengeID)
	}

	s.cache.PutPriceID(ctx, price.ID)
	return price.ID, nil
}

// metadataMatches reports whether the link metadata is exactly the
// {fan_email, fan_name} pair for this fan. Links tagged with extra metadata
// belong to someone else's flow and never match.
func metadataMatches(md map[string]string, email, displayName string) bool {
	return len(md) == 2 &&
		md[model.MetaFanEmail] == email &&
		md[model.MetaFanName] == displayName
}

package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/afrobeatles/fanstore/internal/httpclient"
	"github.com/afrobeatles/fanstore/internal/metrics"
	"github.com/afrobeatles/fanstore/internal/rate"
)

// Client wraps low-level HTTP communication with the Stripe API.
// Requests are form-encoded with Bearer authentication; create calls carry an
// Idempotency-Key header so retries cannot double-create remote objects.
type Client struct {
	logger    *zap.Logger
	exec      *httpclient.Executor
	baseURL   string
	secretKey string
}

// NewClient constructs a new Stripe HTTP client instance.
func NewClient(logger *zap.Logger, rateMgr *rate.Manager, baseURL, secretKey string) *Client {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	exec := httpclient.New(logger, rateMgr, httpClient, 2, "stripe", func(status int, body []byte) error {
		var errResp ErrorResponse
		_ = json.Unmarshal(body, &errResp)

		logger.Warn("stripe.client_error",
			zap.Int("status", status),
			zap.String("type", errResp.Error.Type),
			zap.String("code", errResp.Error.Code),
			zap.String("message", errResp.Error.Message))

		errMsg := errResp.Error.Message
		if errMsg == "" {
			errMsg = string(body)
		}
		return fmt.Errorf("stripe returned %d: %s", status, errMsg)
	})
	return &Client{
		logger:    logger,
		exec:      exec,
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
	}
}

// FindProductByURL looks up at most one product matching a unique URL.
// GET /v1/products?url=...&limit=1
func (c *Client) FindProductByURL(ctx context.Context, productURL string) (*List[Product], error) {
	params := url.Values{}
	params.Set("url", productURL)
	params.Set("limit", "1")

	var resp List[Product]
	if err := c.getForm(ctx, "/v1/products", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPrices looks up at most one price for a product matching a lookup key.
// GET /v1/prices?product=...&lookup_keys[]=...&limit=1
func (c *Client) ListPrices(ctx context.Context, productID, lookupKey string) (*List[Price], error) {
	params := url.Values{}
	params.Set("product", productID)
	params.Set("lookup_keys[]", lookupKey)
	params.Set("limit", "1")

	var resp List[Price]
	if err := c.getForm(ctx, "/v1/prices", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateProduct creates a product identified by a unique URL.
// POST /v1/products
func (c *Client) CreateProduct(ctx context.Context, name, description, productURL string) (*Product, error) {
	form := url.Values{}
	form.Set("name", name)
	form.Set("description", description)
	form.Set("url", productURL)

	var resp Product
	if err := c.postForm(ctx, "/v1/products", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePrice creates a price re-identifiable by lookup key alone.
// transfer_lookup_key makes the key resolve to the most recently created
// price carrying it, decoupling callers from raw price IDs.
// POST /v1/prices
func (c *Client) CreatePrice(ctx context.Context, productID string, unitAmount int64, currency, nickname, lookupKey string) (*Price, error) {
	form := url.Values{}
	form.Set("product", productID)
	form.Set("currency", currency)
	form.Set("unit_amount", strconv.FormatInt(unitAmount, 10))
	form.Set("nickname", nickname)
	form.Set("lookup_key", lookupKey)
	form.Set("transfer_lookup_key", "true")

	var resp Price
	if err := c.postForm(ctx, "/v1/prices", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPaymentLinks lists payment links, newest first.
// GET /v1/payment_links?limit=...
func (c *Client) ListPaymentLinks(ctx context.Context, limit int) (*List[PaymentLink], error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var resp List[PaymentLink]
	if err := c.getForm(ctx, "/v1/payment_links", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreatePaymentLink creates a payment link for quantity units of a price,
// tagged with the given metadata.
// POST /v1/payment_links
func (c *Client) CreatePaymentLink(ctx context.Context, priceID string, quantity int, metadata map[string]string) (*PaymentLink, error) {
	form := url.Values{}
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", strconv.Itoa(quantity))
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var resp PaymentLink
	if err := c.postForm(ctx, "/v1/payment_links", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCheckoutSessions lists recent checkout sessions up to limit.
// GET /v1/checkout/sessions?limit=...
func (c *Client) ListCheckoutSessions(ctx context.Context, limit int) (*List[CheckoutSession], error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var resp List[CheckoutSession]
	if err := c.getForm(ctx, "/v1/checkout/sessions", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// getForm performs an authenticated GET request with query parameters.
func (c *Client) getForm(ctx context.Context, path string, params url.Values, out any) error {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req, false)

	start := time.Now()
	err = c.exec.DoJSON(ctx, req, c.rateLimitKey(), out)
	metrics.ObserveStripeRequest(path, http.MethodGet, err, start)
	return err
}

// postForm performs an authenticated POST request with a form-encoded body.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	u := fmt.Sprintf("%s%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	c.setHeaders(req, true)

	start := time.Now()
	err = c.exec.DoJSON(ctx, req, c.rateLimitKey(), out)
	metrics.ObserveStripeRequest(path, http.MethodPost, err, start)
	return err
}

// setHeaders sets the required headers for Stripe API requests.
func (c *Client) setHeaders(req *http.Request, mutation bool) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if mutation {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
}

// rateLimitKey isolates the rate limit bucket per Stripe host.
func (c *Client) rateLimitKey() string {
	return "stripe_api:" + c.baseURL
}

package stripe

//
// Wire types for the subset of the Stripe API this service consumes.
// Requests are form-encoded; responses are JSON.
//

// List is Stripe's standard list envelope.
type List[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	HasMore bool   `json:"has_more"`
}

// Product represents a Stripe product.
// GET /v1/products, POST /v1/products
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Active      bool   `json:"active"`
}

// Price represents a Stripe price.
// GET /v1/prices, POST /v1/prices
type Price struct {
	ID         string `json:"id"`
	Nickname   string `json:"nickname"`
	Currency   string `json:"currency"`
	UnitAmount int64  `json:"unit_amount"`
	LookupKey  string `json:"lookup_key"`
	Product    string `json:"product"`
	Active     bool   `json:"active"`
}

// PaymentLink represents a Stripe payment link.
// GET /v1/payment_links, POST /v1/payment_links
type PaymentLink struct {
	ID       string            `json:"id"`
	URL      string            `json:"url"`
	Active   bool              `json:"active"`
	Metadata map[string]string `json:"metadata"`
}

// CheckoutSession represents a Stripe checkout session.
// GET /v1/checkout/sessions
type CheckoutSession struct {
	ID          string            `json:"id"`
	AmountTotal int64             `json:"amount_total"`
	Status      string            `json:"status"`
	Metadata    map[string]string `json:"metadata"`
}

// ErrorResponse is Stripe's error envelope.
type ErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

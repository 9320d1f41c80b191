package model

// Price mirrors a remote price record. Immutable once returned from the
// gateway; the lookup key identifies a stable price slot independent of ID.
type Price struct {
	ID         string `json:"id"`
	Nickname   string `json:"nickname"`
	Currency   string `json:"currency"`
	UnitAmount int64  `json:"unit_amount"`
	LookupKey  string `json:"lookup_key"`
}

// Product mirrors a remote product record. Price is attached once after
// provisioning resolves it.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price *Price `json:"price,omitempty"`
}

// Seller is a leaderboard row: one fan and their total spend in minor
// currency units. Constructed fresh per leaderboard request, never persisted.
type Seller struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
}

// CheckoutSession is the slice of a remote checkout session the leaderboard
// aggregates over: the total amount and the fan tags from its metadata.
type CheckoutSession struct {
	ID          string            `json:"id"`
	AmountTotal int64             `json:"amount_total"`
	Metadata    map[string]string `json:"metadata"`
}

// Metadata tag keys identifying the fan on payment links and checkout sessions.
const (
	MetaFanEmail = "fan_email"
	MetaFanName  = "fan_name"
)

// FanEmail returns the fan email tag and whether it is present.
func (s CheckoutSession) FanEmail() (string, bool) {
	v, ok := s.Metadata[MetaFanEmail]
	return v, ok
}

// FanName returns the fan name tag and whether it is present.
func (s CheckoutSession) FanName() (string, bool) {
	v, ok := s.Metadata[MetaFanName]
	return v, ok
}

// Tagged reports whether the session carries both fan tags. Untagged sessions
// are excluded from leaderboard aggregation entirely.
func (s CheckoutSession) Tagged() bool {
	_, hasEmail := s.Metadata[MetaFanEmail]
	_, hasName := s.Metadata[MetaFanName]
	return hasEmail && hasName
}

// PaymentLink mirrors a remote payment link record.
type PaymentLink struct {
	ID       string            `json:"id"`
	URL      string            `json:"url"`
	Active   bool              `json:"active"`
	Metadata map[string]string `json:"metadata"`
}

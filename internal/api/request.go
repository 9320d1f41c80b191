package api

// CreatePaymentLinkRequest is the POST /create-payment-link body.
type CreatePaymentLinkRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

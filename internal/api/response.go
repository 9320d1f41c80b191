package api

import "github.com/afrobeatles/fanstore/pkg/model"

// PaymentLinkResponse carries the URL a fan uses to pay.
type PaymentLinkResponse struct {
	PaymentLink string `json:"paymentLink"`
}

// LeadersResponse is the leaderboard payload, sorted descending by amount.
type LeadersResponse struct {
	Sellers []model.Seller `json:"sellers"`
}

// ErrorResponse is the structured error body returned at a fixed status.
type ErrorResponse struct {
	Error string `json:"error"`
}

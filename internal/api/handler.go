package api

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/afrobeatles/fanstore/pkg/model"
)

// LinkService defines the payment-link workflow needed by the handler.
type LinkService interface {
	CreateLink(ctx context.Context, email, displayName string) (string, error)
}

// LeaderService defines the leaderboard workflow needed by the handler.
type LeaderService interface {
	Leaders(ctx context.Context) ([]model.Seller, error)
}

// Handler handles the storefront JSON API.
type Handler struct {
	logger  *zap.Logger
	links   LinkService
	leaders LeaderService
}

// NewHandler creates a new Handler.
func NewHandler(logger *zap.Logger, links LinkService, leaders LeaderService) *Handler {
	return &Handler{
		logger:  logger,
		links:   links,
		leaders: leaders,
	}
}

// CreatePaymentLinkHandler handles payment link requests. Every failure in
// the sequence surfaces as a structured error body at status 403; the error
// is in the payload, not the protocol.
func (h *Handler) CreatePaymentLinkHandler(c *fiber.Ctx) error {
	var req CreatePaymentLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: err.Error()})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: err.Error()})
	}

	url, err := h.links.CreateLink(c.Context(), req.Email, req.DisplayName)
	if err != nil {
		h.logger.Error("api.create_payment_link.failed",
			zap.String("fan_email", req.Email),
			zap.Error(err))
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(PaymentLinkResponse{PaymentLink: url})
}

// LeadersHandler returns the leaderboard. Failures surface as a verbose
// diagnostic at status 500 for operator debugging.
func (h *Handler) LeadersHandler(c *fiber.Ctx) error {
	sellers, err := h.leaders.Leaders(c.Context())
	if err != nil {
		h.logger.Error("api.leaders.failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: fmt.Sprintf("Error in GET /leaders: %v", err),
		})
	}

	return c.JSON(LeadersResponse{Sellers: sellers})
}

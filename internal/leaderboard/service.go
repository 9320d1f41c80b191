package leaderboard

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/afrobeatles/fanstore/internal/metrics"
	"github.com/afrobeatles/fanstore/internal/stripe"
	"github.com/afrobeatles/fanstore/pkg/model"
)

// Service aggregates checkout sessions into a leaderboard of top purchasers.
type Service struct {
	logger    *zap.Logger
	client    *stripe.Client
	pageLimit int
}

// NewService constructs the leaderboard workflow. pageLimit caps the number
// of sessions fetched per request; there is no further pagination, a known
// scale limit.
func NewService(logger *zap.Logger, client *stripe.Client, pageLimit int) *Service {
	return &Service{
		logger:    logger,
		client:    client,
		pageLimit: pageLimit,
	}
}

type dedupKey struct {
	name   string
	email  string
	amount int64
}

// Leaders returns every fan with at least one qualifying purchase and their
// total spend, sorted descending by amount with original order breaking ties.
// Sessions missing either fan tag are excluded from rows and from totals.
func (s *Service) Leaders(ctx context.Context) ([]model.Seller, error) {
	resp, err := s.client.ListCheckoutSessions(ctx, s.pageLimit)
	if err != nil {
		return nil, fmt.Errorf("list checkout sessions: %w", err)
	}

	tagged := make([]model.CheckoutSession, 0, len(resp.Data))
	for _, ws := range resp.Data {
		sess := stripe.ToModelSession(ws)
		if sess.Tagged() {
			tagged = append(tagged, sess)
		}
	}

	totals := make(map[string]int64, len(tagged))
	for _, sess := range tagged {
		email, _ := sess.FanEmail()
		totals[email] += sess.AmountTotal
	}

	// One forward pass: first occurrence of each (name, email, amount)
	// combination wins, preserving iteration order.
	seen := make(map[dedupKey]struct{}, len(tagged))
	sellers := make([]model.Seller, 0, len(tagged))
	for _, sess := range tagged {
		email, _ := sess.FanEmail()
		name, _ := sess.FanName()
		seller := model.Seller{
			Name:   name,
			Email:  email,
			Amount: totals[email],
		}
		key := dedupKey{name: seller.Name, email: seller.Email, amount: seller.Amount}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		sellers = append(sellers, seller)
	}

	sort.SliceStable(sellers, func(i, j int) bool {
		return sellers[i].Amount > sellers[j].Amount
	})

	metrics.LeaderboardSize.Set(float64(len(sellers)))
	s.logger.Debug("leaderboard.computed",
		zap.Int("sessions", len(resp.Data)),
		zap.Int("tagged", len(tagged)),
		zap.Int("sellers", len(sellers)))

	return sellers, nil
}

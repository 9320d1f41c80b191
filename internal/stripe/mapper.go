package stripe

import "github.com/afrobeatles/fanstore/pkg/model"

// ToModelProduct converts a Stripe product into the canonical record.
// The price is attached separately once resolved.
func ToModelProduct(p Product) model.Product {
	return model.Product{
		ID:   p.ID,
		Name: p.Name,
	}
}

// ToModelPrice converts a Stripe price into the canonical record.
func ToModelPrice(p Price) model.Price {
	return model.Price{
		ID:         p.ID,
		Nickname:   p.Nickname,
		Currency:   p.Currency,
		UnitAmount: p.UnitAmount,
		LookupKey:  p.LookupKey,
	}
}

// ToModelPaymentLink converts a Stripe payment link into the canonical record.
func ToModelPaymentLink(l PaymentLink) model.PaymentLink {
	return model.PaymentLink{
		ID:       l.ID,
		URL:      l.URL,
		Active:   l.Active,
		Metadata: l.Metadata,
	}
}

// ToModelSession converts a Stripe checkout session into the canonical record.
func ToModelSession(s CheckoutSession) model.CheckoutSession {
	return model.CheckoutSession{
		ID:          s.ID,
		AmountTotal: s.AmountTotal,
		Metadata:    s.Metadata,
	}
}

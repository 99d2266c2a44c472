package entitlements

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Receipt records a completed purchase.
type Receipt struct {
	ID         string
	PriceCents int
	Currency   string
	IssuedAt   time.Time
}

// Checkout charges a user for an offer.
type Checkout interface {
	Purchase(ctx context.Context, userID string, offer Offer) (Receipt, error)
}

// MockCheckout approves every purchase without contacting a payment
// provider. Set Decline to simulate a refused card.
type MockCheckout struct {
	Decline bool
}

// Purchase issues a receipt for offer.
func (m MockCheckout) Purchase(ctx context.Context, userID string, offer Offer) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	if m.Decline {
		return Receipt{}, ErrCheckoutDeclined
	}
	return Receipt{
		ID:         "rcpt_" + uuid.NewString(),
		PriceCents: offer.PriceCents,
		Currency:   offer.Currency,
		IssuedAt:   time.Now().UTC(),
	}, nil
}

package entitlements

import (
	"context"
	"fmt"
	"time"

	"web3stack-api/internal/shared/metrics"
	"web3stack-api/internal/shared/telemetry"
)

// EntitlementService answers whether a user has premium access and grants it.
type EntitlementService interface {
	IsUnlocked(ctx context.Context, userID string) (bool, error)
	Unlock(ctx context.Context, userID string) (Entitlement, error)
}

type store interface {
	Get(ctx context.Context, userID string) (Entitlement, error)
	// Grant marks userID as premium unless it already is. It reports whether
	// this call changed the row.
	Grant(ctx context.Context, userID, receiptID string, at time.Time) (Entitlement, bool, error)
	Reset(ctx context.Context, userID string) (Entitlement, error)
}

// Service manages entitlements via an underlying store.
type Service struct {
	store    store
	checkout Checkout
	offer    Offer
	now      func() time.Time
}

var _ EntitlementService = (*Service)(nil)

// NewService constructs a Service with in-memory store.
func NewService(offer Offer, checkout Checkout) *Service {
	return NewStoreService(newMemoryStore(), offer, checkout)
}

// NewStoreService constructs a Service over a SQL-backed store.
func NewStoreService(st store, offer Offer, checkout Checkout) *Service {
	if checkout == nil {
		checkout = MockCheckout{}
	}
	return &Service{
		store:    st,
		checkout: checkout,
		offer:    offer,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Offer returns the premium upgrade on sale.
func (s *Service) Offer() Offer {
	return s.offer
}

// Get returns the user's entitlement, free when none is stored.
func (s *Service) Get(ctx context.Context, userID string) (Entitlement, error) {
	return s.store.Get(ctx, userID)
}

// IsUnlocked reports whether the user holds premium.
func (s *Service) IsUnlocked(ctx context.Context, userID string) (bool, error) {
	e, err := s.store.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return e.Unlocked, nil
}

// Unlock purchases premium for the user. Unlocking an already premium user
// returns the existing entitlement and does not charge again.
func (s *Service) Unlock(ctx context.Context, userID string) (Entitlement, error) {
	current, err := s.store.Get(ctx, userID)
	if err != nil {
		return Entitlement{}, err
	}
	if current.Unlocked {
		return current, nil
	}

	receipt, err := s.checkout.Purchase(ctx, userID, s.offer)
	if err != nil {
		return Entitlement{}, fmt.Errorf("purchase %s: %w", s.offer.Name, err)
	}

	e, granted, err := s.store.Grant(ctx, userID, receipt.ID, s.now())
	if err != nil {
		return Entitlement{}, err
	}
	if granted {
		metrics.IncPremiumUnlocks()
		telemetry.Info("entitlement.unlocked", map[string]any{
			"user_id":     userID,
			"receipt_id":  receipt.ID,
			"price_cents": receipt.PriceCents,
			"currency":    receipt.Currency,
		})
	}
	return e, nil
}

// Reset returns the user to the free plan.
func (s *Service) Reset(ctx context.Context, userID string) (Entitlement, error) {
	return s.store.Reset(ctx, userID)
}

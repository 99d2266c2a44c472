package entitlements

import "time"

// Plan names.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Entitlement is a user's premium state.
type Entitlement struct {
	Plan       string     `json:"plan"`
	Unlocked   bool       `json:"unlocked"`
	ReceiptID  string     `json:"receiptId,omitempty"`
	UnlockedAt *time.Time `json:"unlockedAt"`
}

// Offer is the premium upgrade presented to locked users.
type Offer struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int    `json:"priceCents"`
	Currency    string `json:"currency"`
}

// DefaultOffer returns the standard premium upgrade.
func DefaultOffer() Offer {
	return Offer{
		Name:        "Premium Upgrade",
		Description: "Unlock all technology recommendations and detailed implementation guides.",
		PriceCents:  1999,
		Currency:    "USD",
	}
}

func freeEntitlement() Entitlement {
	return Entitlement{Plan: PlanFree}
}

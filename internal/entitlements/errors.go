package entitlements

import "errors"

var (
	// ErrConfirmationRequired indicates an unlock request was not confirmed.
	ErrConfirmationRequired = errors.New("purchase confirmation required")
	// ErrCheckoutDeclined indicates the checkout refused the purchase.
	ErrCheckoutDeclined = errors.New("checkout declined")
)

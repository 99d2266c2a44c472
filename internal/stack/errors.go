package stack

import "errors"

// ErrInvalidCatalog wraps every catalog load or validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

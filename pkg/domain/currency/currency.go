// Package currency defines the currency entity consumed read-only by the
// conversion engine. All exchange rates are expressed relative to the single
// base currency; at most one currency has IsBase set at any time (enforced at
// currency creation, outside this core, and relied upon here).
package currency

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrCurrencyNotFound is returned when a currency id or code is unknown.
	ErrCurrencyNotFound = errors.New("currency not found")
	// ErrCurrencyInactive is returned when a currency exists but is disabled.
	ErrCurrencyInactive = errors.New("currency is inactive")
	// ErrInvalidRate is returned when a non-base currency carries a
	// non-positive exchange rate.
	ErrInvalidRate = errors.New("exchange rate must be positive")
)

// Currency is an ISO-like currency record with a base-relative exchange rate.
type Currency struct {
	ID        uuid.UUID
	Code      string
	Rate      decimal.Decimal
	IsBase    bool
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeCode canonicalizes a currency code for comparison and cache keys.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// SameCode reports whether two codes refer to the same currency,
// case-insensitively.
func SameCode(a, b string) bool {
	return NormalizeCode(a) == NormalizeCode(b)
}

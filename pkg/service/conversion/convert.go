// Package conversion implements currency conversion and transfer fee
// computation. All rates are expressed relative to the single base currency;
// the pure functions here carry the whole rate algebra so they can be tested
// without any I/O.
package conversion

import (
	"github.com/amirasaad/banking/pkg/domain/currency"
	"github.com/shopspring/decimal"
)

// Convert translates amount from one currency into another using the
// base-relative exchange rates.
//
//	same currency        -> amount unchanged
//	from is base         -> amount * to.Rate
//	to is base           -> amount / from.Rate
//	neither is base      -> (amount / from.Rate) * to.Rate
func Convert(amount decimal.Decimal, from, to *currency.Currency) (decimal.Decimal, error) {
	if from.ID == to.ID || currency.SameCode(from.Code, to.Code) {
		return amount, nil
	}
	if from.IsBase {
		return amount.Mul(to.Rate), nil
	}
	if !from.Rate.IsPositive() {
		return decimal.Zero, currency.ErrInvalidRate
	}
	inBase := amount.Div(from.Rate)
	if to.IsBase {
		return inBase, nil
	}
	return inBase.Mul(to.Rate), nil
}

// SameCurrency reports whether the two currencies are interchangeable for
// fee purposes: same id or same normalized code.
func SameCurrency(from, to *currency.Currency) bool {
	return from.ID == to.ID || currency.SameCode(from.Code, to.Code)
}

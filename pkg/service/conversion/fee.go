package conversion

import "github.com/shopspring/decimal"

// FeePolicy holds the transfer fee rates. The rates are configuration, not
// literals, but the defaults must stay behaviorally identical: 0.5% for
// same-currency transfers, 1.0% when a conversion is involved.
type FeePolicy struct {
	SameCurrencyRate  decimal.Decimal
	CrossCurrencyRate decimal.Decimal
}

// DefaultFeePolicy returns the standard transfer fee rates.
func DefaultFeePolicy() FeePolicy {
	return FeePolicy{
		SameCurrencyRate:  decimal.NewFromFloat(0.005),
		CrossCurrencyRate: decimal.NewFromFloat(0.01),
	}
}

// TransferFee computes the fee for a transfer of the pre-conversion amount,
// rounded to 2 decimals. The fee is always charged in the source account's
// currency, on top of the transferred amount. Deposits and withdrawals carry
// no fee.
func (p FeePolicy) TransferFee(amount decimal.Decimal, sameCurrency bool) decimal.Decimal {
	rate := p.CrossCurrencyRate
	if sameCurrency {
		rate = p.SameCurrencyRate
	}
	return amount.Mul(rate).Round(2)
}

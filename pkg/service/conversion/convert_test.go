package conversion_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/amirasaad/banking/pkg/domain/currency"
	"github.com/amirasaad/banking/pkg/service/conversion"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func usd() *currency.Currency {
	return &currency.Currency{ID: uuid.New(), Code: "USD", Rate: decimal.NewFromInt(1), IsBase: true, Active: true}
}

func eur() *currency.Currency {
	return &currency.Currency{ID: uuid.New(), Code: "EUR", Rate: dec("0.8"), Active: true}
}

func gbp() *currency.Currency {
	return &currency.Currency{ID: uuid.New(), Code: "GBP", Rate: dec("0.5"), Active: true}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	t.Run("same currency is identity", func(t *testing.T) {
		c := eur()
		got, err := conversion.Convert(dec("123.45"), c, c)
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("123.45")))
	})

	t.Run("same code distinct ids is identity", func(t *testing.T) {
		got, err := conversion.Convert(dec("10"), eur(), eur())
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("10")))
	})

	t.Run("base to non-base multiplies", func(t *testing.T) {
		got, err := conversion.Convert(dec("100"), usd(), eur())
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("80")), "100 USD at rate 0.8 is 80 EUR, got %s", got)
	})

	t.Run("non-base to base divides", func(t *testing.T) {
		got, err := conversion.Convert(dec("80"), eur(), usd())
		require.NoError(t, err)
		assert.True(t, got.Equal(dec("100")))
	})

	t.Run("cross goes through the base", func(t *testing.T) {
		got, err := conversion.Convert(dec("80"), eur(), gbp())
		require.NoError(t, err)
		// 80 EUR -> 100 USD -> 50 GBP
		assert.True(t, got.Equal(dec("50")))
	})

	t.Run("zero rate on source is rejected", func(t *testing.T) {
		broken := &currency.Currency{ID: uuid.New(), Code: "XXX", Rate: decimal.Zero}
		_, err := conversion.Convert(dec("10"), broken, usd())
		assert.ErrorIs(t, err, currency.ErrInvalidRate)
	})
}

func TestSameCurrency(t *testing.T) {
	t.Parallel()

	c := eur()
	assert.True(t, conversion.SameCurrency(c, c))
	assert.True(t, conversion.SameCurrency(eur(), eur()), "code match is enough")
	assert.False(t, conversion.SameCurrency(eur(), usd()))
}

func TestTransferFee(t *testing.T) {
	t.Parallel()
	p := conversion.DefaultFeePolicy()

	t.Run("same currency charges 0.5 percent", func(t *testing.T) {
		fee := p.TransferFee(dec("100"), true)
		assert.True(t, fee.Equal(dec("0.50")), "got %s", fee)
	})

	t.Run("cross currency charges 1 percent", func(t *testing.T) {
		fee := p.TransferFee(dec("100"), false)
		assert.True(t, fee.Equal(dec("1.00")), "got %s", fee)
	})

	t.Run("fee rounds to cents", func(t *testing.T) {
		// 33.33 * 0.005 = 0.16665 -> 0.17
		fee := p.TransferFee(dec("33.33"), true)
		assert.True(t, fee.Equal(dec("0.17")), "got %s", fee)
	})
}

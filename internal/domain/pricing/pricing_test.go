//go:build unit

package pricing_test

import (
	"testing"

	"pos-backoffice/internal/domain/pricing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cmpOpts = []cmp.Option{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	taxMultiplier := d("1.06")
	noDiscount := d("1")

	t.Run("basic breakdown with coupon and tax", func(t *testing.T) {
		lines := []pricing.Line{
			{UnitPrice: d("10.00"), Quantity: 2},
			{UnitPrice: d("5.00"), Quantity: 1},
		}

		bd, err := pricing.Compute(lines, d("0.9"), taxMultiplier)
		require.NoError(t, err)

		expected := pricing.Breakdown{
			Subtotal:       d("25.00"),
			DiscountAmount: d("2.50"),
			TaxAmount:      d("1.35"),
			Total:          d("23.85"),
		}
		if diff := cmp.Diff(expected, bd, cmpOpts...); diff != "" {
			t.Errorf("Breakdown mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no coupon leaves zero discount", func(t *testing.T) {
		lines := []pricing.Line{{UnitPrice: d("19.99"), Quantity: 1}}

		bd, err := pricing.Compute(lines, noDiscount, taxMultiplier)
		require.NoError(t, err)

		assert.True(t, bd.DiscountAmount.IsZero())
		assert.True(t, d("21.19").Equal(bd.Total), "total = %s", bd.Total)
	})

	t.Run("empty lines produce a zero breakdown", func(t *testing.T) {
		bd, err := pricing.Compute(nil, noDiscount, taxMultiplier)
		require.NoError(t, err)

		assert.True(t, bd.Subtotal.IsZero())
		assert.True(t, bd.Total.IsZero())
	})

	t.Run("rounds half up at the output boundary", func(t *testing.T) {
		// 10.05 * 0.5 = 5.025, which must round to 5.03 not 5.02.
		lines := []pricing.Line{{UnitPrice: d("10.05"), Quantity: 1}}

		bd, err := pricing.Compute(lines, d("0.5"), d("1"))
		require.NoError(t, err)

		assert.True(t, d("5.03").Equal(bd.DiscountAmount), "discount = %s", bd.DiscountAmount)
	})

	t.Run("intermediates stay unrounded", func(t *testing.T) {
		// retained 2/3 keeps a repeating fraction through the tax step; a
		// premature rounding of the discounted amount would shift the total.
		lines := []pricing.Line{{UnitPrice: d("10.00"), Quantity: 1}}

		bd, err := pricing.Compute(lines, d("0.665"), taxMultiplier)
		require.NoError(t, err)

		// discounted = 6.65, tax = 0.399 -> 0.40, total = 7.049 -> 7.05
		assert.True(t, d("0.40").Equal(bd.TaxAmount), "tax = %s", bd.TaxAmount)
		assert.True(t, d("7.05").Equal(bd.Total), "total = %s", bd.Total)
	})

	t.Run("rejects retained fraction outside unit range", func(t *testing.T) {
		lines := []pricing.Line{{UnitPrice: d("1.00"), Quantity: 1}}

		_, err := pricing.Compute(lines, d("1.5"), taxMultiplier)
		assert.ErrorIs(t, err, pricing.ErrInvalidRetainedFraction)

		_, err = pricing.Compute(lines, d("-0.1"), taxMultiplier)
		assert.ErrorIs(t, err, pricing.ErrInvalidRetainedFraction)
	})

	t.Run("rejects tax multiplier below one", func(t *testing.T) {
		lines := []pricing.Line{{UnitPrice: d("1.00"), Quantity: 1}}

		_, err := pricing.Compute(lines, noDiscount, d("0.99"))
		assert.ErrorIs(t, err, pricing.ErrInvalidTaxMultiplier)
	})
}

func TestLineSubtotal(t *testing.T) {
	got := pricing.LineSubtotal(d("3.33"), 3)
	assert.True(t, d("9.99").Equal(got), "subtotal = %s", got)
}

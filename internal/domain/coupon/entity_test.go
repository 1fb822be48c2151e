//go:build unit

package coupon_test

import (
	"testing"

	"pos-backoffice/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewCoupon(t *testing.T) {
	cases := []struct {
		name    string
		code    string
		percent string
		errIs   error
	}{
		{name: "valid coupon", code: "SAVE10", percent: "10"},
		{name: "hundred percent", code: "FREE", percent: "100"},
		{name: "lowercase code rejected", code: "save10", percent: "10", errIs: coupon.ErrInvalidCouponCode},
		{name: "too short code", code: "AB", percent: "10", errIs: coupon.ErrInvalidCouponCode},
		{name: "percent above 100", code: "SAVE10", percent: "101", errIs: coupon.ErrInvalidDiscountPercent},
		{name: "negative percent", code: "SAVE10", percent: "-1", errIs: coupon.ErrInvalidDiscountPercent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := coupon.NewCoupon(uuid.New(), tc.code, d(tc.percent), true)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCoupon_ValidateUsage(t *testing.T) {
	active, err := coupon.NewCoupon(uuid.New(), "SAVE10", d("10"), true)
	require.NoError(t, err)
	inactive, err := coupon.NewCoupon(uuid.New(), "SAVE10", d("10"), false)
	require.NoError(t, err)

	assert.NoError(t, active.ValidateUsage())
	assert.ErrorIs(t, inactive.ValidateUsage(), coupon.ErrCouponInactive)
}

func TestCoupon_RetainedFraction(t *testing.T) {
	c, err := coupon.NewCoupon(uuid.New(), "SAVE10", d("10"), true)
	require.NoError(t, err)

	assert.True(t, d("0.9").Equal(c.RetainedFraction()), "fraction = %s", c.RetainedFraction())
}

package coupon

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrCouponInactive = errors.New("coupon is inactive")

type Coupon struct {
	id       uuid.UUID
	code     Code
	discount Percentage
	active   bool
}

func NewCoupon(id uuid.UUID, code string, discountPercent decimal.Decimal, active bool) (*Coupon, error) {
	couponCode, err := NewCouponCode(code)
	if err != nil {
		return nil, err
	}

	discount, err := NewPercentage(discountPercent)
	if err != nil {
		return nil, err
	}

	return &Coupon{
		id:       id,
		code:     couponCode,
		discount: discount,
		active:   active,
	}, nil
}

func (c *Coupon) ValidateUsage() error {
	if !c.active {
		return ErrCouponInactive
	}
	return nil
}

// RetainedFraction is the fraction of subtotal kept after the discount
// (1.0 means no discount). The pricing engine works exclusively in this
// representation to avoid the inverted "discount rate" ambiguity.
func (c *Coupon) RetainedFraction() decimal.Decimal {
	return c.discount.RetainedFraction()
}

func (c *Coupon) ID() uuid.UUID        { return c.id }
func (c *Coupon) Code() Code           { return c.code }
func (c *Coupon) Discount() Percentage { return c.discount }
func (c *Coupon) Active() bool         { return c.active }

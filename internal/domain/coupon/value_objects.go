package coupon

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCouponCode      = errors.New("invalid coupon code format")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
)

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCouponCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !couponCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

// Percentage is a discount in the 0-100 range.
type Percentage struct {
	value decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

func NewPercentage(value decimal.Decimal) (Percentage, error) {
	if value.IsNegative() || value.GreaterThan(hundred) {
		return Percentage{}, ErrInvalidDiscountPercent
	}
	return Percentage{value: value}, nil
}

func (p Percentage) Value() decimal.Decimal {
	return p.value
}

// RetainedFraction converts the percentage to 1 - value/100.
func (p Percentage) RetainedFraction() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(p.value.Div(hundred))
}

package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRetainedFraction = errors.New("retained fraction must be between 0 and 1")
	ErrInvalidTaxMultiplier    = errors.New("tax multiplier must be at least 1")
)

var one = decimal.NewFromInt(1)

// Line is a priced quantity of a single item.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Breakdown holds the four monetary outputs of a sale computation, each
// rounded to 2 decimal places half-up.
type Breakdown struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Total          decimal.Decimal
}

// Compute derives subtotal, discount, tax and total for a set of lines.
// retainedFraction is the fraction of subtotal kept after the discount
// (1 = no coupon); taxMultiplier is e.g. 1.06 for a 6% tax. Intermediate
// arithmetic stays unrounded; only the four outputs are rounded, so repeated
// recomputation never accumulates drift.
func Compute(lines []Line, retainedFraction, taxMultiplier decimal.Decimal) (Breakdown, error) {
	if retainedFraction.IsNegative() || retainedFraction.GreaterThan(one) {
		return Breakdown{}, ErrInvalidRetainedFraction
	}
	if taxMultiplier.LessThan(one) {
		return Breakdown{}, ErrInvalidTaxMultiplier
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	discountAmount := subtotal.Mul(one.Sub(retainedFraction))
	discounted := subtotal.Sub(discountAmount)
	taxAmount := discounted.Mul(taxMultiplier.Sub(one))
	total := discounted.Add(taxAmount)

	return Breakdown{
		Subtotal:       subtotal.Round(2),
		DiscountAmount: discountAmount.Round(2),
		TaxAmount:      taxAmount.Round(2),
		Total:          total.Round(2),
	}, nil
}

// LineSubtotal is unit price times quantity, rounded to 2 decimal places.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

package sale

import (
	"errors"
	"time"

	"pos-backoffice/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyFinalized = errors.New("sale is already finalized")
	ErrEmptySale        = errors.New("sale has no line items")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrLineNotFound     = errors.New("line item not found")
)

// Line is one (sale, item) entry. Adding an item that already has a line
// accumulates its quantity instead of duplicating the line.
type Line struct {
	ItemID    int64
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// Sale is a transaction aggregate with a mutable draft phase and an immutable
// finalized phase. Drafts never hold reserved stock; inventory is committed
// only at finalize.
type Sale struct {
	id            uuid.UUID
	lines         []Line
	couponID      *uuid.UUID
	retained      decimal.Decimal
	taxMultiplier decimal.Decimal
	breakdown     pricing.Breakdown
	employeeID    *uuid.UUID
	finalized     bool
	createdAt     time.Time
	finalizedAt   *time.Time
}

func NewSale(employeeID *uuid.UUID, taxMultiplier decimal.Decimal, now time.Time) *Sale {
	return &Sale{
		id:            uuid.New(),
		retained:      decimal.NewFromInt(1),
		taxMultiplier: taxMultiplier,
		employeeID:    employeeID,
		createdAt:     now,
	}
}

func Reconstruct(
	id uuid.UUID,
	lines []Line,
	couponID *uuid.UUID,
	retained decimal.Decimal,
	taxMultiplier decimal.Decimal,
	breakdown pricing.Breakdown,
	employeeID *uuid.UUID,
	finalized bool,
	createdAt time.Time,
	finalizedAt *time.Time,
) *Sale {
	return &Sale{
		id:            id,
		lines:         lines,
		couponID:      couponID,
		retained:      retained,
		taxMultiplier: taxMultiplier,
		breakdown:     breakdown,
		employeeID:    employeeID,
		finalized:     finalized,
		createdAt:     createdAt,
		finalizedAt:   finalizedAt,
	}
}

// AddLine records quantity of an item at the given unit price snapshot and
// recomputes the totals.
func (s *Sale) AddLine(itemID int64, itemName string, unitPrice decimal.Decimal, quantity int) error {
	if s.finalized {
		return ErrAlreadyFinalized
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	merged := false
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity += quantity
			s.lines[i].Subtotal = pricing.LineSubtotal(s.lines[i].UnitPrice, s.lines[i].Quantity)
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, Line{
			ItemID:    itemID,
			ItemName:  itemName,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Subtotal:  pricing.LineSubtotal(unitPrice, quantity),
		})
	}

	return s.recompute()
}

// RemoveLine drops the line for itemID. Returns ErrLineNotFound if absent.
func (s *Sale) RemoveLine(itemID int64) error {
	if s.finalized {
		return ErrAlreadyFinalized
	}
	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.recompute()
		}
	}
	return ErrLineNotFound
}

func (s *Sale) ApplyCoupon(couponID uuid.UUID, retainedFraction decimal.Decimal) error {
	if s.finalized {
		return ErrAlreadyFinalized
	}
	id := couponID
	s.couponID = &id
	s.retained = retainedFraction
	return s.recompute()
}

// MarkFinalized transitions the draft to its terminal immutable state. The
// caller is responsible for having reserved stock for every line first.
func (s *Sale) MarkFinalized(now time.Time) error {
	if s.finalized {
		return ErrAlreadyFinalized
	}
	if len(s.lines) == 0 {
		return ErrEmptySale
	}
	s.finalized = true
	t := now
	s.finalizedAt = &t
	return nil
}

func (s *Sale) recompute() error {
	pricingLines := make([]pricing.Line, len(s.lines))
	for i, line := range s.lines {
		pricingLines[i] = pricing.Line{UnitPrice: line.UnitPrice, Quantity: line.Quantity}
	}
	breakdown, err := pricing.Compute(pricingLines, s.retained, s.taxMultiplier)
	if err != nil {
		return err
	}
	s.breakdown = breakdown
	return nil
}

// QuantityOf returns the quantity already drafted for the item, zero when the
// item has no line.
func (s *Sale) QuantityOf(itemID int64) int {
	for _, line := range s.lines {
		if line.ItemID == itemID {
			return line.Quantity
		}
	}
	return 0
}

func (s *Sale) IsDraft() bool {
	return !s.finalized
}

func (s *Sale) IsEmpty() bool {
	return len(s.lines) == 0
}

func (s *Sale) ID() uuid.UUID { return s.id }

// Lines returns a copy; draft lines change only through the mutation methods.
func (s *Sale) Lines() []Line {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

func (s *Sale) CouponID() *uuid.UUID              { return s.couponID }
func (s *Sale) RetainedFraction() decimal.Decimal { return s.retained }
func (s *Sale) TaxMultiplier() decimal.Decimal    { return s.taxMultiplier }
func (s *Sale) Breakdown() pricing.Breakdown      { return s.breakdown }
func (s *Sale) EmployeeID() *uuid.UUID            { return s.employeeID }
func (s *Sale) Finalized() bool                   { return s.finalized }
func (s *Sale) CreatedAt() time.Time              { return s.createdAt }
func (s *Sale) FinalizedAt() *time.Time           { return s.finalizedAt }

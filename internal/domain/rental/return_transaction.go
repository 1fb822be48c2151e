package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnTransaction is the immutable record of a completed return. Rentals
// carry no cash refund, so RefundTotal is always zero.
type ReturnTransaction struct {
	id           uuid.UUID
	refundTotal  decimal.Decimal
	lateFeeTotal decimal.Decimal
	employeeID   *uuid.UUID
	items        []ReturnItem
	createdAt    time.Time
}

// ReturnItem captures days-late and the fee for one rental line at the time
// of return.
type ReturnItem struct {
	RentalID uuid.UUID
	ItemID   int64
	Quantity int
	DaysLate int
	LateFee  decimal.Decimal
}

func NewReturnTransaction(r *Rental, daysLate int, employeeID *uuid.UUID, now time.Time) *ReturnTransaction {
	return &ReturnTransaction{
		id:           uuid.New(),
		refundTotal:  decimal.Zero,
		lateFeeTotal: r.LateFee(),
		employeeID:   employeeID,
		items: []ReturnItem{{
			RentalID: r.ID(),
			ItemID:   r.ItemID(),
			Quantity: r.Quantity(),
			DaysLate: daysLate,
			LateFee:  r.LateFee(),
		}},
		createdAt: now,
	}
}

func ReconstructReturnTransaction(
	id uuid.UUID,
	refundTotal, lateFeeTotal decimal.Decimal,
	employeeID *uuid.UUID,
	items []ReturnItem,
	createdAt time.Time,
) *ReturnTransaction {
	return &ReturnTransaction{
		id:           id,
		refundTotal:  refundTotal,
		lateFeeTotal: lateFeeTotal,
		employeeID:   employeeID,
		items:        items,
		createdAt:    createdAt,
	}
}

func (t *ReturnTransaction) ID() uuid.UUID                 { return t.id }
func (t *ReturnTransaction) RefundTotal() decimal.Decimal  { return t.refundTotal }
func (t *ReturnTransaction) LateFeeTotal() decimal.Decimal { return t.lateFeeTotal }
func (t *ReturnTransaction) EmployeeID() *uuid.UUID        { return t.employeeID }
func (t *ReturnTransaction) Items() []ReturnItem           { return t.items }
func (t *ReturnTransaction) CreatedAt() time.Time          { return t.createdAt }

package rental

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyReturned = errors.New("rental is already returned")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidPeriod   = errors.New("rental period must be at least 1 day")
)

// Rental reserves rental-pool stock the moment it is created and releases it
// exactly once, when the return is processed. Once returned it is terminal.
type Rental struct {
	id         uuid.UUID
	customerID uuid.UUID
	itemID     int64
	quantity   int
	unitPrice  decimal.Decimal
	rentalDate time.Time
	dueDate    time.Time
	returnDate *time.Time
	returned   bool
	lateFee    decimal.Decimal
	createdAt  time.Time
}

func NewRental(customerID uuid.UUID, itemID int64, quantity int, unitPrice decimal.Decimal, rentalDate time.Time, periodDays int) (*Rental, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if periodDays < 1 {
		return nil, ErrInvalidPeriod
	}

	day := truncateToDay(rentalDate)
	return &Rental{
		id:         uuid.New(),
		customerID: customerID,
		itemID:     itemID,
		quantity:   quantity,
		unitPrice:  unitPrice,
		rentalDate: day,
		dueDate:    day.AddDate(0, 0, periodDays),
		lateFee:    decimal.Zero,
		createdAt:  rentalDate,
	}, nil
}

func Reconstruct(
	id, customerID uuid.UUID,
	itemID int64,
	quantity int,
	unitPrice decimal.Decimal,
	rentalDate, dueDate time.Time,
	returnDate *time.Time,
	returned bool,
	lateFee decimal.Decimal,
	createdAt time.Time,
) *Rental {
	return &Rental{
		id:         id,
		customerID: customerID,
		itemID:     itemID,
		quantity:   quantity,
		unitPrice:  unitPrice,
		rentalDate: rentalDate,
		dueDate:    dueDate,
		returnDate: returnDate,
		returned:   returned,
		lateFee:    lateFee,
		createdAt:  createdAt,
	}
}

// DaysLate counts whole calendar days past the due date; 0 when on time.
// Both sides are normalized to UTC midnight so the clock's location (and DST)
// never shifts the count: dates read from the database already sit at UTC
// midnight, while the wall clock runs in server-local time.
func (r *Rental) DaysLate(today time.Time) int {
	days := int(calendarDay(today).Sub(calendarDay(r.dueDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// LateFeeAt computes unit_price * quantity * rate * days_late.
func (r *Rental) LateFeeAt(today time.Time, lateFeeRate decimal.Decimal) decimal.Decimal {
	daysLate := r.DaysLate(today)
	if daysLate == 0 {
		return decimal.Zero
	}
	return r.unitPrice.
		Mul(decimal.NewFromInt(int64(r.quantity))).
		Mul(lateFeeRate).
		Mul(decimal.NewFromInt(int64(daysLate))).
		Round(2)
}

// MarkReturned is the idempotency guard for return processing: a second call
// fails, so stock is never double-released.
func (r *Rental) MarkReturned(today time.Time, lateFeeRate decimal.Decimal) error {
	if r.returned {
		return ErrAlreadyReturned
	}
	day := truncateToDay(today)
	r.returned = true
	r.returnDate = &day
	r.lateFee = r.LateFeeAt(today, lateFeeRate)
	return nil
}

func (r *Rental) IsOverdue(today time.Time) bool {
	return !r.returned && calendarDay(today).After(calendarDay(r.dueDate))
}

func (r *Rental) ID() uuid.UUID              { return r.id }
func (r *Rental) CustomerID() uuid.UUID      { return r.customerID }
func (r *Rental) ItemID() int64              { return r.itemID }
func (r *Rental) Quantity() int              { return r.quantity }
func (r *Rental) UnitPrice() decimal.Decimal { return r.unitPrice }
func (r *Rental) RentalDate() time.Time      { return r.rentalDate }
func (r *Rental) DueDate() time.Time         { return r.dueDate }
func (r *Rental) ReturnDate() *time.Time     { return r.returnDate }
func (r *Rental) IsReturned() bool           { return r.returned }
func (r *Rental) LateFee() decimal.Decimal   { return r.lateFee }
func (r *Rental) CreatedAt() time.Time       { return r.createdAt }

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// calendarDay maps a moment to its calendar date at UTC midnight.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

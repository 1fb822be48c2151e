//go:build unit

package rental_test

import (
	"testing"
	"time"

	"pos-backoffice/internal/domain/rental"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var (
	lateFeeRate = d("0.10")
	rentedAt    = time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)
)

func newRental(t *testing.T, quantity int, unitPrice string) *rental.Rental {
	t.Helper()
	r, err := rental.NewRental(uuid.New(), 7, quantity, d(unitPrice), rentedAt, 14)
	require.NoError(t, err)
	return r
}

func TestNewRental(t *testing.T) {
	t.Run("due date is rental day plus the period", func(t *testing.T) {
		r := newRental(t, 1, "25.00")

		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), r.RentalDate())
		assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), r.DueDate())
		assert.False(t, r.IsReturned())
		assert.True(t, r.LateFee().IsZero())
	})

	t.Run("rejects invalid quantity and period", func(t *testing.T) {
		_, err := rental.NewRental(uuid.New(), 7, 0, d("25.00"), rentedAt, 14)
		assert.ErrorIs(t, err, rental.ErrInvalidQuantity)

		_, err = rental.NewRental(uuid.New(), 7, 1, d("25.00"), rentedAt, 0)
		assert.ErrorIs(t, err, rental.ErrInvalidPeriod)
	})
}

func TestRental_DaysLate(t *testing.T) {
	r := newRental(t, 1, "25.00")

	cases := []struct {
		name  string
		today time.Time
		want  int
	}{
		{"before due date", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 0},
		{"on due date", time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC), 0},
		{"one day late", time.Date(2025, 3, 16, 0, 30, 0, 0, time.UTC), 1},
		{"five days late", time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC), 5},
		// The due date scans out of the database at UTC midnight while the
		// wall clock runs in server-local time; the count goes by calendar
		// dates, not 24h multiples of the zone-skewed duration.
		{"five days late on an eastern clock", time.Date(2025, 3, 20, 9, 0, 0, 0, time.FixedZone("UTC+7", 7*3600)), 5},
		{"one day late on a western clock", time.Date(2025, 3, 16, 23, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.DaysLate(tc.today))
		})
	}
}

func TestRental_LateFee(t *testing.T) {
	t.Run("fee is price times quantity times rate times days", func(t *testing.T) {
		r := newRental(t, 2, "25.00")
		twoDaysLate := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)

		// 25.00 * 2 * 0.10 * 2
		assert.True(t, d("10.00").Equal(r.LateFeeAt(twoDaysLate, lateFeeRate)))
	})

	t.Run("zero when on time", func(t *testing.T) {
		r := newRental(t, 2, "25.00")

		assert.True(t, r.LateFeeAt(r.DueDate(), lateFeeRate).IsZero())
	})
}

func TestRental_MarkReturned(t *testing.T) {
	t.Run("records return date and settles the fee", func(t *testing.T) {
		r := newRental(t, 1, "25.00")
		returnedAt := time.Date(2025, 3, 18, 16, 0, 0, 0, time.UTC)

		require.NoError(t, r.MarkReturned(returnedAt, lateFeeRate))

		assert.True(t, r.IsReturned())
		require.NotNil(t, r.ReturnDate())
		assert.Equal(t, time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC), *r.ReturnDate())
		// 25.00 * 1 * 0.10 * 3
		assert.True(t, d("7.50").Equal(r.LateFee()), "fee = %s", r.LateFee())
	})

	t.Run("second return fails and changes nothing", func(t *testing.T) {
		r := newRental(t, 1, "25.00")
		returnedAt := time.Date(2025, 3, 18, 16, 0, 0, 0, time.UTC)
		require.NoError(t, r.MarkReturned(returnedAt, lateFeeRate))
		feeBefore := r.LateFee()

		err := r.MarkReturned(returnedAt.AddDate(0, 0, 10), lateFeeRate)

		assert.ErrorIs(t, err, rental.ErrAlreadyReturned)
		assert.True(t, feeBefore.Equal(r.LateFee()))
	})
}

func TestRental_IsOverdue(t *testing.T) {
	r := newRental(t, 1, "25.00")

	assert.False(t, r.IsOverdue(r.DueDate()))
	assert.True(t, r.IsOverdue(r.DueDate().AddDate(0, 0, 1)))
	assert.True(t, r.IsOverdue(time.Date(2025, 3, 16, 1, 0, 0, 0, time.FixedZone("UTC+7", 7*3600))))

	require.NoError(t, r.MarkReturned(r.DueDate().AddDate(0, 0, 2), lateFeeRate))
	assert.False(t, r.IsOverdue(r.DueDate().AddDate(0, 0, 3)))
}

func TestReturnTransaction(t *testing.T) {
	r := newRental(t, 2, "25.00")
	returnedAt := time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.MarkReturned(returnedAt, lateFeeRate))

	employeeID := uuid.New()
	tx := rental.NewReturnTransaction(r, 2, &employeeID, returnedAt)

	// Returns never refund the rental price.
	assert.True(t, tx.RefundTotal().IsZero())
	assert.True(t, d("10.00").Equal(tx.LateFeeTotal()))
	require.Len(t, tx.Items(), 1)
	assert.Equal(t, r.ID(), tx.Items()[0].RentalID)
	assert.Equal(t, 2, tx.Items()[0].DaysLate)
}

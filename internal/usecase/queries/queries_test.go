//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/infra/memstore"
	"pos-backoffice/internal/pkg/clock"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/commands"
	"pos-backoffice/internal/usecase/queries"
	"pos-backoffice/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func settings() shared.EngineSettings {
	return shared.EngineSettings{
		TaxMultiplier:    d("1.06"),
		LateFeeRate:      d("0.10"),
		RentalPeriodDays: 14,
	}
}

func seedItem(t *testing.T, store *memstore.Store, id int64, name, price string, stockSale, stockRental int, itemType item.Type) {
	t.Helper()
	it, err := item.NewItem(id, name, d(price), stockSale, stockRental, itemType)
	require.NoError(t, err)
	store.SeedItem(it)
}

func TestItemQueries(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(settings())
	seedItem(t, store, 1, "Chess Set", "19.99", 5, 0, item.TypeSale)
	seedItem(t, store, 2, "Camping Tent", "89.00", 0, 3, item.TypeRental)
	seedItem(t, store, 3, "Chess Clock", "35.00", 2, 2, item.TypeBoth)
	seedItem(t, store, 4, "Sold Out Puzzle", "9.99", 0, 0, item.TypeSale)

	q := queries.NewItemQueries(store.ItemReads())

	t.Run("get by id", func(t *testing.T) {
		view, err := q.GetByID(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Camping Tent", view.Name)
		assert.True(t, d("89.00").Equal(view.Price))

		_, err = q.GetByID(ctx, 99)
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		views, err := q.List(ctx)
		require.NoError(t, err)
		require.Len(t, views, 4)
		assert.Equal(t, int64(1), views[0].ID)
		assert.Equal(t, int64(4), views[3].ID)
	})

	t.Run("search matches name fragments", func(t *testing.T) {
		views, err := q.Search(ctx, "chess")
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "Chess Set", views[0].Name)
		assert.Equal(t, "Chess Clock", views[1].Name)
	})

	t.Run("available filters by pool and stock", func(t *testing.T) {
		forSale, err := q.ListAvailable(ctx, item.PoolSale)
		require.NoError(t, err)
		require.Len(t, forSale, 2)
		assert.Equal(t, int64(1), forSale[0].ID)
		assert.Equal(t, int64(3), forSale[1].ID)

		forRental, err := q.ListAvailable(ctx, item.PoolRental)
		require.NoError(t, err)
		require.Len(t, forRental, 2)
		assert.Equal(t, int64(2), forRental[0].ID)
		assert.Equal(t, int64(3), forRental[1].ID)
	})

	t.Run("low stock checks each pool", func(t *testing.T) {
		views, err := q.ListLowStock(ctx, 3)
		require.NoError(t, err)
		// Item 1 has an empty rental pool, item 3 sits at 2 in both pools,
		// item 4 is out everywhere. Item 2's sale pool is empty too.
		require.Len(t, views, 4)
	})
}

func TestSaleQueries(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(settings())
	seedItem(t, store, 1, "Chess Set", "19.99", 50, 0, item.TypeSale)

	mockClock := clock.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	cmds := commands.NewSaleCommands(store, store, settings(), mockClock)
	q := queries.NewSaleQueries(store.SaleReads())

	alice := uuid.New()
	bob := uuid.New()

	finalize := func(t *testing.T, employeeID uuid.UUID) uuid.UUID {
		t.Helper()
		s, err := cmds.Open(ctx, &employeeID)
		require.NoError(t, err)
		_, err = cmds.AddItem(ctx, s.ID, 1, 1)
		require.NoError(t, err)
		_, err = cmds.Finalize(ctx, s.ID)
		require.NoError(t, err)
		return s.ID
	}

	first := finalize(t, alice)
	mockClock.Add(24 * time.Hour)
	finalize(t, bob)
	mockClock.Add(24 * time.Hour)
	finalize(t, alice)

	t.Run("get by id", func(t *testing.T) {
		view, err := q.GetByID(ctx, first)
		require.NoError(t, err)
		assert.True(t, view.Finalized)
		require.Len(t, view.Lines, 1)
		assert.True(t, d("21.19").Equal(view.Total), "total = %s", view.Total)

		_, err = q.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrSaleNotFound)
	})

	t.Run("list by employee", func(t *testing.T) {
		views, err := q.ListByEmployee(ctx, alice)
		require.NoError(t, err)
		assert.Len(t, views, 2)

		views, err = q.ListByEmployee(ctx, bob)
		require.NoError(t, err)
		assert.Len(t, views, 1)
	})

	t.Run("date range is half open", func(t *testing.T) {
		from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

		views, err := q.ListByDateRange(ctx, from, to)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, first, views[0].ID)
	})
}

func TestRentalQueries(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(settings())
	seedItem(t, store, 1, "Camping Tent", "89.00", 0, 10, item.TypeRental)

	mockClock := clock.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	cmds := commands.NewRentalCommands(store, store, settings(), mockClock)
	q := queries.NewRentalQueries(store.RentalReads(), mockClock)

	rent := func(t *testing.T, phone string) uuid.UUID {
		t.Helper()
		view, err := cmds.Create(ctx, commands.CreateRentalInput{
			CustomerPhone: phone, ItemID: 1, Quantity: 1,
		})
		require.NoError(t, err)
		return view.ID
	}

	early := rent(t, "0811111111")
	mockClock.Add(48 * time.Hour)
	late := rent(t, "0811111111")
	rent(t, "0822222222")

	_, err := cmds.ProcessReturn(ctx, early, nil)
	require.NoError(t, err)

	t.Run("get by id", func(t *testing.T) {
		view, err := q.GetByID(ctx, late)
		require.NoError(t, err)
		assert.Equal(t, "0811111111", view.CustomerPhone)
		assert.Equal(t, "Camping Tent", view.ItemName)

		_, err = q.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, errs.ErrRentalNotFound)
	})

	t.Run("outstanding excludes returned rentals", func(t *testing.T) {
		views, err := q.ListOutstandingByPhone(ctx, "0811111111")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, late, views[0].ID)
	})

	t.Run("full history keeps returned rentals", func(t *testing.T) {
		views, err := q.ListByPhone(ctx, "0811111111")
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, early, views[0].ID)
	})

	t.Run("overdue uses the clock", func(t *testing.T) {
		views, err := q.ListOverdue(ctx)
		require.NoError(t, err)
		assert.Empty(t, views)

		// The two open rentals were taken 2025-03-03 and fall due 2025-03-17.
		mockClock.Set(time.Date(2025, 3, 18, 9, 0, 0, 0, time.UTC))
		views, err = q.ListOverdue(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)
		for _, v := range views {
			assert.NotEqual(t, early, v.ID)
		}
	})
}

func TestCustomerQueries(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(settings())
	seedItem(t, store, 1, "Camping Tent", "89.00", 0, 10, item.TypeRental)

	mockClock := clock.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	cmds := commands.NewRentalCommands(store, store, settings(), mockClock)
	q := queries.NewCustomerQueries(store.CustomerReads())

	rent := func(t *testing.T, phone string) uuid.UUID {
		t.Helper()
		view, err := cmds.Create(ctx, commands.CreateRentalInput{
			CustomerPhone: phone, ItemID: 1, Quantity: 1,
		})
		require.NoError(t, err)
		return view.ID
	}

	rent(t, "0811111111")
	rent(t, "0811111111")
	settled := rent(t, "0822222222")
	_, err := cmds.ProcessReturn(ctx, settled, nil)
	require.NoError(t, err)

	t.Run("list covers every customer with their open rental count", func(t *testing.T) {
		views, err := q.List(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "0811111111", views[0].PhoneNumber)
		assert.Equal(t, 2, views[0].OutstandingRentals)
		assert.Equal(t, "0822222222", views[1].PhoneNumber)
		assert.Equal(t, 0, views[1].OutstandingRentals)
	})

	t.Run("outstanding filter drops settled customers", func(t *testing.T) {
		views, err := q.ListWithOutstandingRentals(ctx)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "0811111111", views[0].PhoneNumber)
	})
}

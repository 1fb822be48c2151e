//go:build unit

package commands_test

import (
	"context"
	"testing"

	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/infra/memstore"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryEnv() (*memstore.Store, commands.InventoryCommands) {
	store := memstore.New(testSettings())
	return store, commands.NewInventoryCommands(store)
}

func TestInventoryCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("registers an item", func(t *testing.T) {
		store, cmds := newInventoryEnv()

		view, err := cmds.CreateItem(ctx, commands.CreateItemInput{
			ID: 1, Name: "Chess Set", Price: d("19.99"),
			StockSale: 5, StockRental: 3, ItemType: "Both",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), view.ID)
		assert.Equal(t, "Chess Set", view.Name)
		assert.True(t, d("19.99").Equal(view.Price))
		assert.Equal(t, 5, store.StockOf(1, item.PoolSale))
		assert.Equal(t, 3, store.StockOf(1, item.PoolRental))
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, cmds := newInventoryEnv()
		input := commands.CreateItemInput{
			ID: 1, Name: "Chess Set", Price: d("19.99"), StockSale: 5, ItemType: "Sale",
		}

		_, err := cmds.CreateItem(ctx, input)
		require.NoError(t, err)
		_, err = cmds.CreateItem(ctx, input)
		assert.ErrorIs(t, err, errs.ErrItemAlreadyExists)
	})

	t.Run("validation failures", func(t *testing.T) {
		_, cmds := newInventoryEnv()
		cases := map[string]commands.CreateItemInput{
			"unknown type":   {ID: 1, Name: "X", Price: d("1.00"), ItemType: "Lease"},
			"empty name":     {ID: 1, Name: "  ", Price: d("1.00"), ItemType: "Sale"},
			"negative price": {ID: 1, Name: "X", Price: d("-1.00"), ItemType: "Sale"},
			"negative stock": {ID: 1, Name: "X", Price: d("1.00"), StockSale: -1, ItemType: "Sale"},
		}
		for name, input := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := cmds.CreateItem(ctx, input)
				assert.ErrorIs(t, err, errs.ErrInvalidItem)
			})
		}
	})
}

func TestInventoryDeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an item", func(t *testing.T) {
		_, cmds := newInventoryEnv()
		_, err := cmds.CreateItem(ctx, commands.CreateItemInput{
			ID: 1, Name: "Chess Set", Price: d("19.99"), StockSale: 5, ItemType: "Sale",
		})
		require.NoError(t, err)

		require.NoError(t, cmds.DeleteItem(ctx, 1))
		assert.ErrorIs(t, cmds.DeleteItem(ctx, 1), errs.ErrItemNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, cmds := newInventoryEnv()
		assert.ErrorIs(t, cmds.DeleteItem(ctx, 42), errs.ErrItemNotFound)
	})
}

func TestInventoryAdjustStock(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*memstore.Store, commands.InventoryCommands) {
		t.Helper()
		store, cmds := newInventoryEnv()
		_, err := cmds.CreateItem(ctx, commands.CreateItemInput{
			ID: 1, Name: "Chess Set", Price: d("19.99"),
			StockSale: 5, StockRental: 3, ItemType: "Both",
		})
		require.NoError(t, err)
		return store, cmds
	}

	t.Run("restock increments the pool", func(t *testing.T) {
		store, cmds := seed(t)

		view, err := cmds.AdjustStock(ctx, commands.AdjustStockInput{
			ItemID: 1, Pool: item.PoolSale, Quantity: 4,
		})
		require.NoError(t, err)

		assert.Equal(t, 9, view.StockSale)
		assert.Equal(t, 3, view.StockRental)
		assert.Equal(t, 9, store.StockOf(1, item.PoolSale))
	})

	t.Run("decrease removes stock", func(t *testing.T) {
		store, cmds := seed(t)

		view, err := cmds.AdjustStock(ctx, commands.AdjustStockInput{
			ItemID: 1, Pool: item.PoolRental, Quantity: 2, Decrease: true,
		})
		require.NoError(t, err)

		assert.Equal(t, 1, view.StockRental)
		assert.Equal(t, 1, store.StockOf(1, item.PoolRental))
	})

	t.Run("decrease cannot drive a counter negative", func(t *testing.T) {
		store, cmds := seed(t)

		_, err := cmds.AdjustStock(ctx, commands.AdjustStockInput{
			ItemID: 1, Pool: item.PoolSale, Quantity: 6, Decrease: true,
		})
		assert.ErrorIs(t, err, errs.ErrInsufficientStock)
		assert.Equal(t, 5, store.StockOf(1, item.PoolSale))
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, cmds := seed(t)

		_, err := cmds.AdjustStock(ctx, commands.AdjustStockInput{ItemID: 1, Pool: item.PoolSale, Quantity: 0})
		assert.ErrorIs(t, err, errs.ErrInvalidQuantity)

		_, err = cmds.AdjustStock(ctx, commands.AdjustStockInput{ItemID: 1, Pool: item.Pool("bulk"), Quantity: 1})
		assert.ErrorIs(t, err, errs.ErrInvalidItem)

		_, err = cmds.AdjustStock(ctx, commands.AdjustStockInput{ItemID: 42, Pool: item.PoolSale, Quantity: 1})
		assert.ErrorIs(t, err, errs.ErrItemNotFound)
	})
}

package commands

import (
	"context"
	"errors"

	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/pkg/errs"
	"pos-backoffice/internal/usecase/queries"
	"pos-backoffice/internal/usecase/shared"

	"github.com/shopspring/decimal"
)

type CreateItemInput struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	StockSale   int
	StockRental int
	ItemType    string
}

type AdjustStockInput struct {
	ItemID   int64
	Pool     item.Pool
	Quantity int
	// Decrease restocks when false and removes stock when true. Removal goes
	// through the ledger's conditional decrement, so it can never drive a
	// counter negative.
	Decrease bool
}

// InventoryCommands is the back-office catalog surface: item registration,
// removal and manual stock corrections.
type InventoryCommands interface {
	CreateItem(ctx context.Context, input CreateItemInput) (*queries.ItemView, error)
	DeleteItem(ctx context.Context, itemID int64) error
	AdjustStock(ctx context.Context, input AdjustStockInput) (*queries.ItemView, error)
}

type inventoryCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewInventoryCommands(uow shared.UnitOfWork) InventoryCommands {
	return &inventoryCommandsImpl{uow: uow}
}

func (c *inventoryCommandsImpl) CreateItem(ctx context.Context, input CreateItemInput) (*queries.ItemView, error) {
	itemType, err := item.ParseType(input.ItemType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidItem)
	}
	it, err := item.NewItem(input.ID, input.Name, input.Price, input.StockSale, input.StockRental, itemType)
	if err != nil {
		return nil, mapItemDomainErr(err)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Items().Create(ctx, it); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrItemAlreadyExists)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return itemViewFromDomain(it), nil
}

func (c *inventoryCommandsImpl) DeleteItem(ctx context.Context, itemID int64) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Items().Delete(ctx, itemID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrItemNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *inventoryCommandsImpl) AdjustStock(ctx context.Context, input AdjustStockInput) (*queries.ItemView, error) {
	if input.Quantity <= 0 {
		return nil, errs.ErrInvalidQuantity
	}
	if !input.Pool.Valid() {
		return nil, errs.ErrInvalidItem
	}

	var result *queries.ItemView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if input.Decrease {
			err = tx.Ledger().Reserve(ctx, input.ItemID, input.Pool, input.Quantity)
		} else {
			err = tx.Ledger().Release(ctx, input.ItemID, input.Pool, input.Quantity)
		}
		if err != nil {
			return mapLedgerErr(err)
		}

		it, err := tx.Items().FindByID(ctx, input.ItemID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result = itemViewFromDomain(it)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func mapItemDomainErr(err error) error {
	switch {
	case errors.Is(err, item.ErrInvalidPrice),
		errors.Is(err, item.ErrNegativeStock),
		errors.Is(err, item.ErrInvalidItemType),
		errors.Is(err, item.ErrEmptyName):
		return errs.Mark(err, errs.ErrInvalidItem)
	default:
		return err
	}
}

func itemViewFromDomain(it *item.Item) *queries.ItemView {
	return &queries.ItemView{
		ID:          it.ID(),
		Name:        it.Name(),
		Price:       it.Price(),
		StockSale:   it.StockSale(),
		StockRental: it.StockRental(),
		ItemType:    string(it.ItemType()),
	}
}

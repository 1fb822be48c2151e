package repository

import (
	"context"
	"sort"

	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/infra/db"
	"pos-backoffice/internal/usecase/shared"
)

// InventoryLedger implements the stock counters with conditional updates:
// the WHERE clause makes check-and-decrement a single atomic step, so a
// counter can never go negative even under racing callers.
type InventoryLedger struct {
	dbtx db.DBTX
}

func NewInventoryLedger(dbtx db.DBTX) *InventoryLedger {
	return &InventoryLedger{dbtx: dbtx}
}

func stockColumn(pool item.Pool) string {
	if pool == item.PoolRental {
		return "stock_rental"
	}
	return "stock_sale"
}

func (l *InventoryLedger) Reserve(ctx context.Context, itemID int64, pool item.Pool, quantity int) error {
	col := stockColumn(pool)
	tag, err := l.dbtx.Exec(ctx, `
		UPDATE items
		SET `+col+` = `+col+` - $2, updated_at = now()
		WHERE item_id = $1 AND `+col+` >= $2
	`, itemID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve stock", err)
	}
	if tag.RowsAffected() == 0 {
		return l.classifyFailedUpdate(ctx, itemID, pool)
	}
	return nil
}

func (l *InventoryLedger) Release(ctx context.Context, itemID int64, pool item.Pool, quantity int) error {
	col := stockColumn(pool)
	tag, err := l.dbtx.Exec(ctx, `
		UPDATE items
		SET `+col+` = `+col+` + $2, updated_at = now()
		WHERE item_id = $1
	`, itemID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to release stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

// ReserveMany reserves every entry or none. It runs inside the caller's
// transaction, so an error here aborts the transaction and the row updates
// already applied are undone by the rollback. Items are locked in id order
// to keep concurrent multi-item reservations deadlock-free.
func (l *InventoryLedger) ReserveMany(ctx context.Context, entries []shared.ReservationEntry) error {
	ordered := make([]shared.ReservationEntry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ItemID < ordered[j].ItemID })

	for _, entry := range ordered {
		if err := l.Reserve(ctx, entry.ItemID, entry.Pool, entry.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// The conditional update affecting zero rows means either a missing item or
// short stock; one extra read distinguishes the two.
func (l *InventoryLedger) classifyFailedUpdate(ctx context.Context, itemID int64, pool item.Pool) error {
	var exists bool
	err := l.dbtx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM items WHERE item_id = $1)
	`, itemID).Scan(&exists)
	if err != nil {
		return infra.WrapRepoErr("failed to check item existence", err)
	}
	if !exists {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr("insufficient stock",
		&item.InsufficientStockError{ItemID: itemID, Pool: pool}, infra.KindInsufficientStock)
}

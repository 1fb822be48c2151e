package repository

import (
	"context"

	"pos-backoffice/internal/domain/rental"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/infra/db"
	"pos-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReturnRepository struct {
	dbtx db.DBTX
}

func NewReturnRepository(dbtx db.DBTX) *ReturnRepository {
	return &ReturnRepository{dbtx: dbtx}
}

func (r *ReturnRepository) Create(ctx context.Context, tx *rental.ReturnTransaction) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO return_transactions (id, total_refund, late_fee_total, employee_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, tx.ID(), tx.RefundTotal(), tx.LateFeeTotal(), pgconv.UUIDPtrToPgtype(tx.EmployeeID()), tx.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create return transaction", err)
	}

	for _, it := range tx.Items() {
		_, err := r.dbtx.Exec(ctx, `
			INSERT INTO return_items (id, return_transaction_id, rental_id, item_id, quantity, days_late, late_fee)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New(), tx.ID(), it.RentalID, it.ItemID, it.Quantity, it.DaysLate, it.LateFee)
		if err != nil {
			return infra.WrapRepoErr("failed to create return item", err)
		}
	}
	return nil
}

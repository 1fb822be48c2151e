package repository

import (
	"context"
	"time"

	"pos-backoffice/internal/domain/rental"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/infra/db"
	"pos-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type RentalRepository struct {
	dbtx db.DBTX
}

func NewRentalRepository(dbtx db.DBTX) *RentalRepository {
	return &RentalRepository{dbtx: dbtx}
}

func (r *RentalRepository) Create(ctx context.Context, rt *rental.Rental) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO rentals (id, customer_id, item_id, quantity, unit_price, rental_date, due_date, return_date, is_returned, late_fee, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		rt.ID(), rt.CustomerID(), rt.ItemID(), rt.Quantity(), rt.UnitPrice(),
		rt.RentalDate(), rt.DueDate(), pgconv.TimePtrToDate(rt.ReturnDate()),
		rt.IsReturned(), rt.LateFee(), rt.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create rental", err)
	}
	return nil
}

func (r *RentalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	var (
		customerID uuid.UUID
		itemID     int64
		quantity   int
		unitPrice  decimal.Decimal
		rentalDate time.Time
		dueDate    time.Time
		returnDate pgtype.Date
		isReturned bool
		lateFee    decimal.Decimal
		createdAt  time.Time
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT customer_id, item_id, quantity, unit_price, rental_date, due_date, return_date, is_returned, late_fee, created_at
		FROM rentals
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&customerID, &itemID, &quantity, &unitPrice, &rentalDate, &dueDate, &returnDate, &isReturned, &lateFee, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental by ID", err)
	}

	return rental.Reconstruct(
		id, customerID, itemID, quantity, unitPrice,
		rentalDate, dueDate, pgconv.TimePtrFromDate(returnDate),
		isReturned, lateFee, createdAt,
	), nil
}

func (r *RentalRepository) Save(ctx context.Context, rt *rental.Rental) error {
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE rentals
		SET return_date = $2, is_returned = $3, late_fee = $4
		WHERE id = $1
	`, rt.ID(), pgconv.TimePtrToDate(rt.ReturnDate()), rt.IsReturned(), rt.LateFee())
	if err != nil {
		return infra.WrapRepoErr("failed to update rental", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rental not found", nil, infra.KindNotFound)
	}
	return nil
}

package readstore

import (
	"context"
	"time"

	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/infra/db"
	"pos-backoffice/internal/pkg/pgconv"
	"pos-backoffice/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RentalReadStore struct {
	dbtx db.DBTX
}

func NewRentalReadStore(dbtx db.DBTX) *RentalReadStore {
	return &RentalReadStore{dbtx: dbtx}
}

// Rental reads join customers and items so a view carries the phone number
// and item name the counter staff search by.
const rentalSelect = `
	SELECT r.id, c.phone_number, r.item_id, i.name, r.quantity, r.unit_price,
	       r.rental_date, r.due_date, r.return_date, r.is_returned, r.late_fee
	FROM rentals r
	JOIN customers c ON c.id = r.customer_id
	JOIN items i ON i.item_id = r.item_id
`

func (s *RentalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RentalView, error) {
	row := s.dbtx.QueryRow(ctx, rentalSelect+` WHERE r.id = $1`, id)
	v, err := scanRentalView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental", err)
	}
	return &v, nil
}

func (s *RentalReadStore) ListOutstandingByPhone(ctx context.Context, phone string) ([]queries.RentalView, error) {
	return s.list(ctx, rentalSelect+`
		WHERE c.phone_number = $1 AND NOT r.is_returned
		ORDER BY r.rental_date
	`, phone)
}

func (s *RentalReadStore) ListByPhone(ctx context.Context, phone string) ([]queries.RentalView, error) {
	return s.list(ctx, rentalSelect+`
		WHERE c.phone_number = $1
		ORDER BY r.rental_date
	`, phone)
}

func (s *RentalReadStore) ListOverdue(ctx context.Context, today time.Time) ([]queries.RentalView, error) {
	return s.list(ctx, rentalSelect+`
		WHERE NOT r.is_returned AND r.due_date < $1
		ORDER BY r.due_date
	`, today)
}

func (s *RentalReadStore) list(ctx context.Context, query string, args ...any) ([]queries.RentalView, error) {
	rows, err := s.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rentals", err)
	}
	defer rows.Close()

	views := make([]queries.RentalView, 0)
	for rows.Next() {
		v, err := scanRentalView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rental rows", err)
	}
	return views, nil
}

func scanRentalView(row pgx.Row) (queries.RentalView, error) {
	var v queries.RentalView
	err := row.Scan(
		&v.ID,
		&v.CustomerPhone,
		&v.ItemID,
		&v.ItemName,
		&v.Quantity,
		&v.UnitPrice,
		&v.RentalDate,
		&v.DueDate,
		&v.ReturnDate,
		&v.IsReturned,
		&v.LateFee,
	)
	return v, err
}

package queries

import (
	"context"
	"time"

	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/pkg/clock"
	"pos-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

type RentalReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RentalView, error)
	ListOutstandingByPhone(ctx context.Context, phone string) ([]RentalView, error)
	ListByPhone(ctx context.Context, phone string) ([]RentalView, error)
	// ListOverdue returns unreturned rentals whose due date is before today.
	ListOverdue(ctx context.Context, today time.Time) ([]RentalView, error)
}

type RentalQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RentalView, error)
	ListOutstandingByPhone(ctx context.Context, phone string) ([]RentalView, error)
	ListByPhone(ctx context.Context, phone string) ([]RentalView, error)
	ListOverdue(ctx context.Context) ([]RentalView, error)
}

type rentalQueriesImpl struct {
	store RentalReadStore
	clock clock.Clock
}

func NewRentalQueries(store RentalReadStore, clock clock.Clock) RentalQueries {
	return &rentalQueriesImpl{store: store, clock: clock}
}

func (q *rentalQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RentalView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRentalNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *rentalQueriesImpl) ListOutstandingByPhone(ctx context.Context, phone string) ([]RentalView, error) {
	return q.store.ListOutstandingByPhone(ctx, phone)
}

func (q *rentalQueriesImpl) ListByPhone(ctx context.Context, phone string) ([]RentalView, error) {
	return q.store.ListByPhone(ctx, phone)
}

func (q *rentalQueriesImpl) ListOverdue(ctx context.Context) ([]RentalView, error) {
	return q.store.ListOverdue(ctx, q.clock.Now())
}

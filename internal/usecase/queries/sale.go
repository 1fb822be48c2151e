package queries

import (
	"context"
	"time"

	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/pkg/errs"

	"github.com/google/uuid"
)

type SaleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleView, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]SaleView, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]SaleView, error)
}

type SaleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SaleView, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]SaleView, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]SaleView, error)
}

type saleQueriesImpl struct {
	store SaleReadStore
}

func NewSaleQueries(store SaleReadStore) SaleQueries {
	return &saleQueriesImpl{store: store}
}

func (q *saleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SaleView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSaleNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *saleQueriesImpl) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]SaleView, error) {
	return q.store.ListByEmployee(ctx, employeeID)
}

func (q *saleQueriesImpl) ListByDateRange(ctx context.Context, from, to time.Time) ([]SaleView, error) {
	return q.store.ListByDateRange(ctx, from, to)
}

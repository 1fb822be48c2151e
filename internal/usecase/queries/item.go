package queries

import (
	"context"

	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/pkg/errs"
)

type ItemReadStore interface {
	FindByID(ctx context.Context, id int64) (*ItemView, error)
	List(ctx context.Context) ([]ItemView, error)
	Search(ctx context.Context, name string) ([]ItemView, error)
	ListAvailable(ctx context.Context, pool item.Pool) ([]ItemView, error)
	ListLowStock(ctx context.Context, threshold int) ([]ItemView, error)
}

type ItemQueries interface {
	GetByID(ctx context.Context, id int64) (*ItemView, error)
	List(ctx context.Context) ([]ItemView, error)
	Search(ctx context.Context, name string) ([]ItemView, error)
	ListAvailable(ctx context.Context, pool item.Pool) ([]ItemView, error)
	ListLowStock(ctx context.Context, threshold int) ([]ItemView, error)
}

type itemQueriesImpl struct {
	store ItemReadStore
}

func NewItemQueries(store ItemReadStore) ItemQueries {
	return &itemQueriesImpl{store: store}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, id int64) (*ItemView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *itemQueriesImpl) List(ctx context.Context) ([]ItemView, error) {
	return q.store.List(ctx)
}

func (q *itemQueriesImpl) Search(ctx context.Context, name string) ([]ItemView, error) {
	return q.store.Search(ctx, name)
}

func (q *itemQueriesImpl) ListAvailable(ctx context.Context, pool item.Pool) ([]ItemView, error) {
	return q.store.ListAvailable(ctx, pool)
}

func (q *itemQueriesImpl) ListLowStock(ctx context.Context, threshold int) ([]ItemView, error) {
	if threshold <= 0 {
		threshold = 10
	}
	return q.store.ListLowStock(ctx, threshold)
}

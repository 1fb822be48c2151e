package queries

import "context"

type CustomerReadStore interface {
	List(ctx context.Context) ([]CustomerView, error)
	// ListWithOutstandingRentals returns only customers holding at least one
	// unreturned rental.
	ListWithOutstandingRentals(ctx context.Context) ([]CustomerView, error)
}

type CustomerQueries interface {
	List(ctx context.Context) ([]CustomerView, error)
	ListWithOutstandingRentals(ctx context.Context) ([]CustomerView, error)
}

type customerQueriesImpl struct {
	store CustomerReadStore
}

func NewCustomerQueries(store CustomerReadStore) CustomerQueries {
	return &customerQueriesImpl{store: store}
}

func (q *customerQueriesImpl) List(ctx context.Context) ([]CustomerView, error) {
	return q.store.List(ctx)
}

func (q *customerQueriesImpl) ListWithOutstandingRentals(ctx context.Context) ([]CustomerView, error) {
	return q.store.ListWithOutstandingRentals(ctx)
}

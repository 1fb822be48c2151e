package readstore

import (
	"context"

	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/infra/db"
	"pos-backoffice/internal/usecase/queries"
)

type CustomerReadStore struct {
	dbtx db.DBTX
}

func NewCustomerReadStore(dbtx db.DBTX) *CustomerReadStore {
	return &CustomerReadStore{dbtx: dbtx}
}

const customerSelect = `
	SELECT c.id, c.phone_number, c.created_at,
	       COUNT(r.id) FILTER (WHERE NOT r.is_returned) AS outstanding_rentals
	FROM customers c
	LEFT JOIN rentals r ON r.customer_id = c.id
	GROUP BY c.id, c.phone_number, c.created_at
`

func (s *CustomerReadStore) List(ctx context.Context) ([]queries.CustomerView, error) {
	return s.list(ctx, customerSelect+` ORDER BY c.phone_number`)
}

func (s *CustomerReadStore) ListWithOutstandingRentals(ctx context.Context) ([]queries.CustomerView, error) {
	return s.list(ctx, customerSelect+`
		HAVING COUNT(r.id) FILTER (WHERE NOT r.is_returned) > 0
		ORDER BY c.phone_number
	`)
}

func (s *CustomerReadStore) list(ctx context.Context, query string) ([]queries.CustomerView, error) {
	rows, err := s.dbtx.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list customers", err)
	}
	defer rows.Close()

	views := make([]queries.CustomerView, 0)
	for rows.Next() {
		var v queries.CustomerView
		if err := rows.Scan(&v.ID, &v.PhoneNumber, &v.CreatedAt, &v.OutstandingRentals); err != nil {
			return nil, infra.WrapRepoErr("failed to scan customer row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate customer rows", err)
	}
	return views, nil
}

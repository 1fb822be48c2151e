// Package readstore holds the postgres read models behind the query layer.
// Read models scan straight into view structs and never pass through the
// domain aggregates.
package readstore

import (
	"context"

	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/infra/db"
	"pos-backoffice/internal/pkg/pgconv"
	"pos-backoffice/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

type ItemReadStore struct {
	dbtx db.DBTX
}

func NewItemReadStore(dbtx db.DBTX) *ItemReadStore {
	return &ItemReadStore{dbtx: dbtx}
}

const itemColumns = `item_id, name, price, stock_sale, stock_rental, item_type`

func (s *ItemReadStore) FindByID(ctx context.Context, id int64) (*queries.ItemView, error) {
	row := s.dbtx.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM items WHERE item_id = $1
	`, id)
	v, err := scanItemView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item", err)
	}
	return &v, nil
}

func (s *ItemReadStore) List(ctx context.Context) ([]queries.ItemView, error) {
	return s.list(ctx, `
		SELECT `+itemColumns+` FROM items ORDER BY item_id
	`)
}

func (s *ItemReadStore) Search(ctx context.Context, name string) ([]queries.ItemView, error) {
	return s.list(ctx, `
		SELECT `+itemColumns+` FROM items WHERE name ILIKE '%' || $1 || '%' ORDER BY item_id
	`, name)
}

func (s *ItemReadStore) ListAvailable(ctx context.Context, pool item.Pool) ([]queries.ItemView, error) {
	if pool == item.PoolRental {
		return s.list(ctx, `
			SELECT `+itemColumns+` FROM items
			WHERE stock_rental > 0 AND item_type IN ('Rental', 'Both')
			ORDER BY item_id
		`)
	}
	return s.list(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE stock_sale > 0 AND item_type IN ('Sale', 'Both')
		ORDER BY item_id
	`)
}

func (s *ItemReadStore) ListLowStock(ctx context.Context, threshold int) ([]queries.ItemView, error) {
	return s.list(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE stock_sale < $1 OR stock_rental < $1
		ORDER BY item_id
	`, threshold)
}

func (s *ItemReadStore) list(ctx context.Context, query string, args ...any) ([]queries.ItemView, error) {
	rows, err := s.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	views := make([]queries.ItemView, 0)
	for rows.Next() {
		v, err := scanItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate item rows", err)
	}
	return views, nil
}

func scanItemView(row pgx.Row) (queries.ItemView, error) {
	var v queries.ItemView
	err := row.Scan(&v.ID, &v.Name, &v.Price, &v.StockSale, &v.StockRental, &v.ItemType)
	return v, err
}

package repository

import (
	"context"
	"errors"

	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/infra/db"
	"pos-backoffice/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const pgErrCodeUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation
}

type ItemRepository struct {
	dbtx db.DBTX
}

func NewItemRepository(dbtx db.DBTX) *ItemRepository {
	return &ItemRepository{dbtx: dbtx}
}

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) error {
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO items (item_id, name, price, stock_sale, stock_rental, item_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`, it.ID(), it.Name(), it.Price(), it.StockSale(), it.StockRental(), string(it.ItemType()))
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("item already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create item", err)
	}
	return nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	var (
		name        string
		price       decimal.Decimal
		stockSale   int
		stockRental int
		itemType    string
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT name, price, stock_sale, stock_rental, item_type
		FROM items
		WHERE item_id = $1
	`, id).Scan(&name, &price, &stockSale, &stockRental, &itemType)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return item.Reconstruct(id, name, price, stockSale, stockRental, item.Type(itemType)), nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.dbtx.Exec(ctx, `DELETE FROM items WHERE item_id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

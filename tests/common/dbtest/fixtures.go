//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestItem(t *testing.T, db DBLike, itemID int64, name, price string, stockSale, stockRental int, itemType string) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO items (item_id, name, price, stock_sale, stock_rental, item_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (item_id) DO UPDATE
		SET stock_sale = EXCLUDED.stock_sale, stock_rental = EXCLUDED.stock_rental`,
		itemID, name, price, stockSale, stockRental, itemType)
	require.NoError(t, err)
}

func CreateTestCoupon(t *testing.T, db DBLike, code string, discountPercent int, active bool) uuid.UUID {
	t.Helper()

	couponID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx, `
		INSERT INTO coupons (id, code, discount_percent, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING`,
		couponID, code, discountPercent, active)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM coupons WHERE code = $1", code).Scan(&couponID)
	}
	return couponID
}

func CreateTestCustomer(t *testing.T, db DBLike, phone string) uuid.UUID {
	t.Helper()

	customerID := uuid.New()
	ctx := context.Background()
	tag, err := db.Exec(ctx, `
		INSERT INTO customers (id, phone_number) VALUES ($1, $2)
		ON CONFLICT (phone_number) DO NOTHING`,
		customerID, phone)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM customers WHERE phone_number = $1", phone).Scan(&customerID)
	}
	return customerID
}

// StockOf reads one pool counter straight from the items table.
func StockOf(t *testing.T, db DBLike, itemID int64, pool string) int {
	t.Helper()

	column := "stock_sale"
	if pool == "rental" {
		column = "stock_rental"
	}
	var stock int
	err := db.QueryRow(context.Background(),
		"SELECT "+column+" FROM items WHERE item_id = $1", itemID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from an empty engine
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}

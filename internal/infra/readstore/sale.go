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

type SaleReadStore struct {
	dbtx db.DBTX
}

func NewSaleReadStore(dbtx db.DBTX) *SaleReadStore {
	return &SaleReadStore{dbtx: dbtx}
}

const saleColumns = `id, coupon_id, subtotal, discount_amount, tax_amount, total, employee_id, finalized, created_at, finalized_at`

func (s *SaleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SaleView, error) {
	row := s.dbtx.QueryRow(ctx, `
		SELECT `+saleColumns+` FROM sales WHERE id = $1
	`, id)
	v, err := scanSaleView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sale not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sale", err)
	}
	if err := s.attachLines(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *SaleReadStore) ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]queries.SaleView, error) {
	return s.list(ctx, `
		SELECT `+saleColumns+` FROM sales WHERE employee_id = $1 ORDER BY created_at
	`, employeeID)
}

func (s *SaleReadStore) ListByDateRange(ctx context.Context, from, to time.Time) ([]queries.SaleView, error) {
	return s.list(ctx, `
		SELECT `+saleColumns+` FROM sales
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at
	`, from, to)
}

func (s *SaleReadStore) list(ctx context.Context, query string, args ...any) ([]queries.SaleView, error) {
	rows, err := s.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sales", err)
	}
	defer rows.Close()

	views := make([]queries.SaleView, 0)
	for rows.Next() {
		v, err := scanSaleView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan sale row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate sale rows", err)
	}

	for i := range views {
		if err := s.attachLines(ctx, &views[i]); err != nil {
			return nil, err
		}
	}
	return views, nil
}

func (s *SaleReadStore) attachLines(ctx context.Context, v *queries.SaleView) error {
	rows, err := s.dbtx.Query(ctx, `
		SELECT item_id, item_name, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY item_id
	`, v.ID)
	if err != nil {
		return infra.WrapRepoErr("failed to list sale items", err)
	}
	defer rows.Close()

	lines := make([]queries.SaleLineView, 0)
	for rows.Next() {
		var line queries.SaleLineView
		if err := rows.Scan(&line.ItemID, &line.ItemName, &line.Quantity, &line.UnitPrice, &line.Subtotal); err != nil {
			return infra.WrapRepoErr("failed to scan sale item row", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate sale item rows", err)
	}
	v.Lines = lines
	return nil
}

func scanSaleView(row pgx.Row) (queries.SaleView, error) {
	var v queries.SaleView
	err := row.Scan(
		&v.ID,
		&v.CouponID,
		&v.Subtotal,
		&v.DiscountAmount,
		&v.TaxAmount,
		&v.Total,
		&v.EmployeeID,
		&v.Finalized,
		&v.CreatedAt,
		&v.FinalizedAt,
	)
	return v, err
}

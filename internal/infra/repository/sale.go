package repository

import (
	"context"
	"time"

	"pos-backoffice/internal/domain/pricing"
	"pos-backoffice/internal/domain/sale"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/infra/db"
	"pos-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type SaleRepository struct {
	dbtx          db.DBTX
	taxMultiplier decimal.Decimal
}

func NewSaleRepository(dbtx db.DBTX, taxMultiplier decimal.Decimal) *SaleRepository {
	return &SaleRepository{dbtx: dbtx, taxMultiplier: taxMultiplier}
}

func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	bd := s.Breakdown()
	_, err := r.dbtx.Exec(ctx, `
		INSERT INTO sales (id, coupon_id, retained_fraction, subtotal, discount_amount, tax_amount, total, employee_id, finalized, created_at, finalized_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		s.ID(), pgconv.UUIDPtrToPgtype(s.CouponID()), s.RetainedFraction(),
		bd.Subtotal, bd.DiscountAmount, bd.TaxAmount, bd.Total,
		pgconv.UUIDPtrToPgtype(s.EmployeeID()), s.Finalized(), s.CreatedAt(),
		pgconv.TimePtrToPgtype(s.FinalizedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create sale", err)
	}
	return r.replaceLines(ctx, s)
}

// FindByIDForUpdate locks the sale row for the duration of the transaction
// so two requests mutating the same draft serialize.
func (r *SaleRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sale.Sale, error) {
	var (
		couponID    pgtype.UUID
		retained    decimal.Decimal
		subtotal    decimal.Decimal
		discount    decimal.Decimal
		tax         decimal.Decimal
		total       decimal.Decimal
		employeeID  pgtype.UUID
		finalized   bool
		createdAt   time.Time
		finalizedAt pgtype.Timestamptz
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT coupon_id, retained_fraction, subtotal, discount_amount, tax_amount, total, employee_id, finalized, created_at, finalized_at
		FROM sales
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&couponID, &retained, &subtotal, &discount, &tax, &total, &employeeID, &finalized, &createdAt, &finalizedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sale not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sale by ID", err)
	}

	lines, err := r.findLines(ctx, id)
	if err != nil {
		return nil, err
	}

	return sale.Reconstruct(
		id, lines,
		pgconv.UUIDPtrFromPgtype(couponID), retained, r.taxMultiplier,
		pricing.Breakdown{Subtotal: subtotal, DiscountAmount: discount, TaxAmount: tax, Total: total},
		pgconv.UUIDPtrFromPgtype(employeeID), finalized, createdAt,
		pgconv.TimePtrFromPgtype(finalizedAt),
	), nil
}

func (r *SaleRepository) Save(ctx context.Context, s *sale.Sale) error {
	bd := s.Breakdown()
	tag, err := r.dbtx.Exec(ctx, `
		UPDATE sales
		SET coupon_id = $2, retained_fraction = $3, subtotal = $4, discount_amount = $5, tax_amount = $6, total = $7, finalized = $8, finalized_at = $9
		WHERE id = $1
	`,
		s.ID(), pgconv.UUIDPtrToPgtype(s.CouponID()), s.RetainedFraction(),
		bd.Subtotal, bd.DiscountAmount, bd.TaxAmount, bd.Total,
		s.Finalized(), pgconv.TimePtrToPgtype(s.FinalizedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update sale", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("sale not found", nil, infra.KindNotFound)
	}
	return r.replaceLines(ctx, s)
}

// Sale lines are owned substructures of the sale aggregate: rewritten as a
// whole with their parent, never addressed independently.
func (r *SaleRepository) replaceLines(ctx context.Context, s *sale.Sale) error {
	if _, err := r.dbtx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, s.ID()); err != nil {
		return infra.WrapRepoErr("failed to clear sale items", err)
	}
	for _, line := range s.Lines() {
		_, err := r.dbtx.Exec(ctx, `
			INSERT INTO sale_items (sale_id, item_id, item_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, s.ID(), line.ItemID, line.ItemName, line.Quantity, line.UnitPrice, line.Subtotal)
		if err != nil {
			return infra.WrapRepoErr("failed to insert sale item", err)
		}
	}
	return nil
}

func (r *SaleRepository) findLines(ctx context.Context, saleID uuid.UUID) ([]sale.Line, error) {
	rows, err := r.dbtx.Query(ctx, `
		SELECT item_id, item_name, quantity, unit_price, subtotal
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY item_id
	`, saleID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load sale items", err)
	}
	defer rows.Close()

	var lines []sale.Line
	for rows.Next() {
		var line sale.Line
		if err := rows.Scan(&line.ItemID, &line.ItemName, &line.Quantity, &line.UnitPrice, &line.Subtotal); err != nil {
			return nil, infra.WrapRepoErr("failed to scan sale item", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate sale items", err)
	}
	return lines, nil
}

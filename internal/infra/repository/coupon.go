package repository

import (
	"context"
	"strings"

	"pos-backoffice/internal/domain/coupon"
	"pos-backoffice/internal/infra"
	"pos-backoffice/internal/infra/db"
	"pos-backoffice/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CouponRepository struct {
	dbtx db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{dbtx: dbtx}
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var (
		id              uuid.UUID
		storedCode      string
		discountPercent decimal.Decimal
		active          bool
	)
	err := r.dbtx.QueryRow(ctx, `
		SELECT id, code, discount_percent, is_active
		FROM coupons
		WHERE code = $1
	`, normalized).Scan(&id, &storedCode, &discountPercent, &active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}

	entity, err := coupon.NewCoupon(id, storedCode, discountPercent, active)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert coupon row", err)
	}
	return entity, nil
}

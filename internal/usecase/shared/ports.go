package shared

import (
	"context"
	"time"

	"pos-backoffice/internal/domain/coupon"
	"pos-backoffice/internal/domain/customer"
	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/domain/rental"
	"pos-backoffice/internal/domain/sale"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EngineSettings carries the configured pricing and rental constants.
// It is built once at bootstrap and handed to the engine explicitly.
type EngineSettings struct {
	TaxMultiplier    decimal.Decimal
	LateFeeRate      decimal.Decimal
	RentalPeriodDays int
}

// ReservationEntry is one line of a multi-item reservation.
type ReservationEntry struct {
	ItemID   int64
	Pool     item.Pool
	Quantity int
}

// InventoryLedger owns the per-item stock counters. All operations are
// atomic per item; ReserveMany is all-or-nothing across its entries.
type InventoryLedger interface {
	// Reserve atomically checks and decrements one pool counter. Fails with
	// an *item.InsufficientStockError without any decrement when stock does
	// not cover quantity.
	Reserve(ctx context.Context, itemID int64, pool item.Pool, quantity int) error
	// Release atomically increments one pool counter.
	Release(ctx context.Context, itemID int64, pool item.Pool, quantity int) error
	// ReserveMany reserves every entry or none: entries reserved before a
	// failure are released before the error is returned.
	ReserveMany(ctx context.Context, entries []ReservationEntry) error
}

type ItemRepository interface {
	Create(ctx context.Context, it *item.Item) error
	FindByID(ctx context.Context, id int64) (*item.Item, error)
	Delete(ctx context.Context, id int64) error
}

type SaleRepository interface {
	Create(ctx context.Context, s *sale.Sale) error
	// FindByIDForUpdate locks the sale row so concurrent mutation of the
	// same draft serializes.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sale.Sale, error)
	// Save replaces the sale's line items and totals.
	Save(ctx context.Context, s *sale.Sale) error
}

type RentalRepository interface {
	Create(ctx context.Context, r *rental.Rental) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*rental.Rental, error)
	Save(ctx context.Context, r *rental.Rental) error
}

type CustomerRepository interface {
	GetOrCreateByPhone(ctx context.Context, phone customer.PhoneNumber, now time.Time) (*customer.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
}

type CouponRepository interface {
	FindByCode(ctx context.Context, code string) (*coupon.Coupon, error)
}

type ReturnRepository interface {
	Create(ctx context.Context, tx *rental.ReturnTransaction) error
}

// ActivityLogger records employee actions. Calls are fire-and-forget: a
// failed write must never roll back the business operation it annotates.
type ActivityLogger interface {
	Log(ctx context.Context, employeeID uuid.UUID, action string)
}

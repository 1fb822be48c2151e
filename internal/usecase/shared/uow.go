package shared

import (
	"context"
)

// UnitOfWork runs a function against a transactional view of the store.
// Within commits when fn returns nil and rolls everything back otherwise, so
// a failed multi-step operation (e.g. finalize) leaves no partial state.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes the write-side repositories bound to one transaction.
type Tx interface {
	Items() ItemRepository
	Ledger() InventoryLedger
	Sales() SaleRepository
	Rentals() RentalRepository
	Customers() CustomerRepository
	Coupons() CouponRepository
	Returns() ReturnRepository
}

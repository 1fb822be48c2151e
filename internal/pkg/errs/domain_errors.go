package errs

import "errors"

// Domain-specific sentinel errors surfaced by the usecase layers
var (
	// Item errors
	ErrItemNotFound      = errors.New("item not found")
	ErrItemAlreadyExists = errors.New("item already exists")
	ErrInvalidItem       = errors.New("invalid item")

	// Stock errors
	ErrInsufficientStock = errors.New("insufficient stock")

	// Sale errors
	ErrSaleNotFound         = errors.New("sale not found")
	ErrSaleAlreadyFinalized = errors.New("sale already finalized")
	ErrEmptySale            = errors.New("cannot finalize empty sale")

	// Rental errors
	ErrRentalNotFound   = errors.New("rental not found")
	ErrAlreadyReturned  = errors.New("rental already returned")
	ErrCustomerNotFound = errors.New("customer not found")

	// Coupon errors
	ErrCouponNotFound = errors.New("coupon not found")
	ErrInvalidCoupon  = errors.New("invalid coupon")

	// Validation errors
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidPhoneNumber = errors.New("invalid phone number")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

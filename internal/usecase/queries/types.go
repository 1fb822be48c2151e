package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemView struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	StockSale   int             `json:"stock_sale"`
	StockRental int             `json:"stock_rental"`
	ItemType    string          `json:"item_type"`
}

type SaleLineView struct {
	ItemID    int64           `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type SaleView struct {
	ID             uuid.UUID       `json:"id"`
	Lines          []SaleLineView  `json:"lines"`
	CouponID       *uuid.UUID      `json:"coupon_id,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	EmployeeID     *uuid.UUID      `json:"employee_id,omitempty"`
	Finalized      bool            `json:"finalized"`
	CreatedAt      time.Time       `json:"created_at"`
	FinalizedAt    *time.Time      `json:"finalized_at,omitempty"`
}

type CustomerView struct {
	ID                 uuid.UUID `json:"id"`
	PhoneNumber        string    `json:"phone_number"`
	OutstandingRentals int       `json:"outstanding_rentals"`
	CreatedAt          time.Time `json:"created_at"`
}

type RentalView struct {
	ID            uuid.UUID       `json:"id"`
	CustomerPhone string          `json:"customer_phone"`
	ItemID        int64           `json:"item_id"`
	ItemName      string          `json:"item_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	RentalDate    time.Time       `json:"rental_date"`
	DueDate       time.Time       `json:"due_date"`
	ReturnDate    *time.Time      `json:"return_date,omitempty"`
	IsReturned    bool            `json:"is_returned"`
	LateFee       decimal.Decimal `json:"late_fee"`
}

package item

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrice    = errors.New("price must be greater than 0")
	ErrNegativeStock   = errors.New("stock cannot be negative")
	ErrInvalidItemType = errors.New("invalid item type")
	ErrEmptyName       = errors.New("item name is required")
)

// Pool identifies one of the two independent stock counters on an item.
type Pool string

const (
	PoolSale   Pool = "sale"
	PoolRental Pool = "rental"
)

func (p Pool) Valid() bool {
	return p == PoolSale || p == PoolRental
}

// Type constrains which pools a given item may be reserved from.
type Type string

const (
	TypeSale   Type = "Sale"
	TypeRental Type = "Rental"
	TypeBoth   Type = "Both"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeSale, TypeRental, TypeBoth:
		return Type(s), nil
	default:
		return "", ErrInvalidItemType
	}
}

// InsufficientStockError reports which item a reservation failed on, so a
// multi-line finalize can surface the offending line to the caller.
type InsufficientStockError struct {
	ItemID int64
	Pool   Pool
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient %s stock for item %d", e.Pool, e.ItemID)
}

type Item struct {
	id          int64
	name        string
	price       decimal.Decimal
	stockSale   int
	stockRental int
	itemType    Type
}

func NewItem(id int64, name string, price decimal.Decimal, stockSale, stockRental int, itemType Type) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !price.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if stockSale < 0 || stockRental < 0 {
		return nil, ErrNegativeStock
	}
	if _, err := ParseType(string(itemType)); err != nil {
		return nil, err
	}

	return &Item{
		id:          id,
		name:        name,
		price:       price.Round(2),
		stockSale:   stockSale,
		stockRental: stockRental,
		itemType:    itemType,
	}, nil
}

func Reconstruct(id int64, name string, price decimal.Decimal, stockSale, stockRental int, itemType Type) *Item {
	return &Item{
		id:          id,
		name:        name,
		price:       price,
		stockSale:   stockSale,
		stockRental: stockRental,
		itemType:    itemType,
	}
}

// AvailableForSale is advisory only: the authoritative check happens inside
// the ledger's atomic reserve.
func (i *Item) AvailableForSale(quantity int) bool {
	return i.stockSale >= quantity && (i.itemType == TypeSale || i.itemType == TypeBoth)
}

func (i *Item) AvailableForRental(quantity int) bool {
	return i.stockRental >= quantity && (i.itemType == TypeRental || i.itemType == TypeBoth)
}

func (i *Item) SupportsPool(pool Pool) bool {
	switch pool {
	case PoolSale:
		return i.itemType == TypeSale || i.itemType == TypeBoth
	case PoolRental:
		return i.itemType == TypeRental || i.itemType == TypeBoth
	default:
		return false
	}
}

func (i *Item) StockFor(pool Pool) int {
	if pool == PoolRental {
		return i.stockRental
	}
	return i.stockSale
}

func (i *Item) LowStock(threshold int) bool {
	return i.stockSale < threshold || i.stockRental < threshold
}

func (i *Item) ID() int64              { return i.id }
func (i *Item) Name() string           { return i.name }
func (i *Item) Price() decimal.Decimal { return i.price }
func (i *Item) StockSale() int         { return i.stockSale }
func (i *Item) StockRental() int       { return i.stockRental }
func (i *Item) ItemType() Type         { return i.itemType }

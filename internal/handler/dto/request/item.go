package request

import (
	"pos-backoffice/internal/domain/item"
	"pos-backoffice/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type CreateItemRequest struct {
	ID          int64           `json:"id" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	StockSale   int             `json:"stock_sale"`
	StockRental int             `json:"stock_rental"`
	ItemType    string          `json:"item_type" binding:"required"`
}

func (r CreateItemRequest) ToInput() commands.CreateItemInput {
	return commands.CreateItemInput{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		StockSale:   r.StockSale,
		StockRental: r.StockRental,
		ItemType:    r.ItemType,
	}
}

type AdjustStockRequest struct {
	Pool     string `json:"pool" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Decrease bool   `json:"decrease"`
}

func (r AdjustStockRequest) ToInput(itemID int64) commands.AdjustStockInput {
	return commands.AdjustStockInput{
		ItemID:   itemID,
		Pool:     item.Pool(r.Pool),
		Quantity: r.Quantity,
		Decrease: r.Decrease,
	}
}

package request

type CreateRentalRequest struct {
	CustomerPhone string `json:"customer_phone" binding:"required"`
	ItemID        int64  `json:"item_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
}

package request

type AddSaleItemRequest struct {
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,min=1"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

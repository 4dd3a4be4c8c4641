package models

// CartItem holds a weak reference to a Product by id plus a snapshot of the
// fields the cart needs to render and price the line. The snapshot is taken
// at add-to-cart time and does not track later catalog changes.
type CartItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
	BasePriceMinor int64  `json:"base_price_minor"`
	Quantity       int    `json:"quantity"`
}

func (i *CartItem) LineTotalMinor() int64 {
	return i.UnitPriceMinor * int64(i.Quantity)
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"omitempty,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"min=0"`
}

type ApplyPromotionRequest struct {
	Code string `json:"code" validate:"required"`
}

type CartResponse struct {
	Items         []CartItem `json:"items"`
	TotalItems    int        `json:"total_items"`
	SubtotalMinor int64      `json:"subtotal_minor"`
	DiscountMinor int64      `json:"discount_minor"`
	TotalMinor    int64      `json:"total_minor"`
	PromotionCode string     `json:"promotion_code,omitempty"`
	Subtotal      string     `json:"subtotal"`
	Total         string     `json:"total"`
}

package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipping  OrderStatus = "shipping"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is owned by the commerce backend. The client receives it once from
// the order-creation call and never mutates it; everything shown after the
// cart is cleared comes from the success projection, not from this struct.
type Order struct {
	ID            string      `json:"_id"`
	OrderNumber   string      `json:"order_number,omitempty"`
	Status        OrderStatus `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	TotalMinor    int64       `json:"total"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderSummary is the denormalized confirmation view derived from the cart
// snapshot taken at submit time plus the backend Order.
type OrderSummary struct {
	OrderNumber       string     `json:"order_number"`
	OrderDate         time.Time  `json:"order_date"`
	EstimatedDelivery time.Time  `json:"estimated_delivery"`
	Lines             []CartItem `json:"lines"`
	SubtotalMinor     int64      `json:"subtotal_minor"`
	DiscountMinor     int64      `json:"discount_minor"`
	TaxMinor          int64      `json:"tax_minor"`
	TotalMinor        int64      `json:"total_minor"`
	Total             string     `json:"total"`
	PaymentMethod     string     `json:"payment_method"`
	PaymentStatus     string     `json:"payment_status"`
}

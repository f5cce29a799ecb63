package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// Order is assembled once by the checkout pipeline and never mutated by it
// afterwards. Region is empty unless the order ships domestically.
type Order struct {
	OrderNumber    string          `json:"order_number"`
	Items          []CartItem      `json:"items"`
	Country        string          `json:"country"`
	Region         string          `json:"region"`
	ShippingMethod string          `json:"shipping_method"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	LastModifiedAt time.Time       `json:"last_modified_at"`
}

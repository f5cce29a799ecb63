package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Accessory is the admin-managed CRUD resource; unrelated to the pet
// catalog and the checkout flow.
type Accessory struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

package accessories

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Input is the create/update request body for an accessory.
type Input struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
}

// Validate returns the first failing rule's message, or "" when the input
// is acceptable.
func Validate(in Input) string {
	if strings.TrimSpace(in.Name) == "" {
		return "Name is required."
	}
	if strings.TrimSpace(in.Category) == "" {
		return "Category is required."
	}
	if in.Price.IsNegative() {
		return "Price must be zero or greater."
	}
	if in.StockQuantity < 0 {
		return "Stock quantity must be zero or greater."
	}
	return ""
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Pet struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Species       string          `json:"species"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewPet is the single place where pet inputs are sanitized: negative
// price and stock are clamped to zero rather than rejected, matching the
// storefront's lenient seed-data handling.
func NewPet(id int64, name, species, description string, price decimal.Decimal, stock int, imageURL string) Pet {
	if price.IsNegative() {
		price = decimal.Zero
	}
	if stock < 0 {
		stock = 0
	}
	return Pet{
		ID:            id,
		Name:          name,
		Species:       species,
		Description:   description,
		Price:         price,
		StockQuantity: stock,
		ImageURL:      imageURL,
		CreatedAt:     time.Now().UTC(),
	}
}

// PetShippingRestriction denies shipping one pet to one country.
type PetShippingRestriction struct {
	PetID     int64
	CountryID int64
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one distinct pet's line in a cart. Name, price and image are
// snapshotted at add time and never refreshed, so later catalog changes do
// not retroactively alter an open cart.
type CartItem struct {
	PetID    int64           `json:"pet_id"`
	PetName  string          `json:"pet_name"`
	PetPrice decimal.Decimal `json:"pet_price"`
	Quantity int             `json:"quantity"`
	ImageURL string          `json:"image_url"`
}

// NewCartItem clamps negative price and quantity to zero; this is the only
// sanitization point for cart line inputs.
func NewCartItem(petID int64, name string, price decimal.Decimal, quantity int, imageURL string) CartItem {
	if price.IsNegative() {
		price = decimal.Zero
	}
	if quantity < 0 {
		quantity = 0
	}
	return CartItem{
		PetID:    petID,
		PetName:  name,
		PetPrice: price,
		Quantity: quantity,
		ImageURL: imageURL,
	}
}

func (i CartItem) LineTotal() decimal.Decimal {
	return i.PetPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is owned by exactly one visitor session. Items keep insertion order
// with one entry per pet.
type Cart struct {
	CartID         string     `json:"cart_id"`
	Items          []CartItem `json:"items"`
	CreatedAt      time.Time  `json:"created_at"`
	LastModifiedAt time.Time  `json:"last_modified_at"`
}

func NewCart(cartID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		CartID:         cartID,
		CreatedAt:      now,
		LastModifiedAt: now,
	}
}

// AddItem merges by pet ID: an existing line gains the incoming quantity
// and keeps its original price/name snapshot.
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].PetID == item.PetID {
			c.Items[i].Quantity += item.Quantity
			c.LastModifiedAt = time.Now().UTC()
			return
		}
	}
	c.Items = append(c.Items, item)
	c.LastModifiedAt = time.Now().UTC()
}

// RemoveItem drops every line matching petID. Removing an absent pet is a
// no-op.
func (c *Cart) RemoveItem(petID int64) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.PetID != petID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.LastModifiedAt = time.Now().UTC()
}

func (c *Cart) Clear() {
	c.Items = nil
	c.LastModifiedAt = time.Now().UTC()
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

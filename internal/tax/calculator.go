package tax

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Calculator applies the single flat-rate tax rule: orders for the
// designated domestic country are taxed at a flat rate of the subtotal,
// all other countries at zero.
type Calculator struct {
	domesticCode string
	domesticName string
	rate         decimal.Decimal
}

// NewCalculator builds a calculator matching the domestic country by code
// or display name, case-insensitively.
func NewCalculator(domesticCode, domesticName string, rate decimal.Decimal) *Calculator {
	return &Calculator{
		domesticCode: domesticCode,
		domesticName: domesticName,
		rate:         rate,
	}
}

// Calculate returns subtotal*rate for the domestic country and zero for
// anything else. The subtotal is not validated; a negative subtotal yields
// a negative tax amount.
func (c *Calculator) Calculate(subtotal decimal.Decimal, country string) decimal.Decimal {
	if country == "" {
		return decimal.Zero
	}
	if strings.EqualFold(country, c.domesticCode) || strings.EqualFold(country, c.domesticName) {
		return subtotal.Mul(c.rate)
	}
	return decimal.Zero
}

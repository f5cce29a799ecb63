package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newCalculator() *Calculator {
	return NewCalculator("AU", "Australia", decimal.RequireFromString("0.10"))
}

func TestCalculate_DomesticByCodeOrName(t *testing.T) {
	c := newCalculator()
	subtotal := decimal.NewFromInt(100)

	want := decimal.NewFromInt(10)
	assert.True(t, c.Calculate(subtotal, "AU").Equal(want))
	assert.True(t, c.Calculate(subtotal, "au").Equal(want))
	assert.True(t, c.Calculate(subtotal, "Australia").Equal(want))
	assert.True(t, c.Calculate(subtotal, "AUSTRALIA").Equal(want))
}

func TestCalculate_NonDomesticIsZero(t *testing.T) {
	c := newCalculator()

	assert.True(t, c.Calculate(decimal.NewFromInt(100), "GB").IsZero())
	assert.True(t, c.Calculate(decimal.NewFromInt(100), "New Zealand").IsZero())
	assert.True(t, c.Calculate(decimal.NewFromInt(100), "").IsZero())
	assert.True(t, c.Calculate(decimal.NewFromInt(-500), "GB").IsZero())
}

func TestCalculate_SubtotalNotClamped(t *testing.T) {
	c := newCalculator()

	// A negative subtotal produces a negative tax amount; the calculator
	// applies the rate without validating its input.
	got := c.Calculate(decimal.NewFromInt(-100), "AU")
	assert.True(t, got.Equal(decimal.NewFromInt(-10)))

	assert.True(t, c.Calculate(decimal.Zero, "AU").IsZero())
}

func TestCalculate_ExactDecimalArithmetic(t *testing.T) {
	c := newCalculator()

	got := c.Calculate(decimal.NewFromInt(130), "Australia")
	assert.True(t, got.Equal(decimal.NewFromInt(13)))
}

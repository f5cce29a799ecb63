package shipping

import (
	"context"
	"errors"
	"strings"

	"github.com/gopetstore/petstore/internal/domain"
	"github.com/gopetstore/petstore/internal/refdata"
	"github.com/shopspring/decimal"
)

// DefaultDomesticRate applies when a domestic lookup has no region/method
// or no matching rate row. International misses fall back to zero instead;
// the asymmetry is inherited storefront behavior, kept as-is.
var DefaultDomesticRate = decimal.NewFromInt(10)

// Calculator prices shipments against the seeded rate tables. The single
// domestic country uses the flat (region, method) matrix; every other
// country uses its two-tier per-weight rate.
type Calculator struct {
	store        refdata.Store
	domesticCode string
}

func NewCalculator(store refdata.Store, domesticCode string) *Calculator {
	return &Calculator{store: store, domesticCode: domesticCode}
}

// Cost returns the shipping cost for one shipment. Weight only matters for
// international shipments; domestic pricing is flat per (region, method).
func (c *Calculator) Cost(ctx context.Context, countryCode, region string, weightKg decimal.Decimal, method string) (decimal.Decimal, error) {
	if countryCode == "" {
		return decimal.Zero, nil
	}
	if c.isDomestic(countryCode) {
		return c.domesticCost(ctx, region, method)
	}
	return c.internationalCost(ctx, countryCode, weightKg)
}

func (c *Calculator) domesticCost(ctx context.Context, region, method string) (decimal.Decimal, error) {
	if region == "" || method == "" {
		return DefaultDomesticRate, nil
	}
	rate, err := c.store.FindDomesticRate(ctx, region, method)
	if errors.Is(err, refdata.ErrRateNotFound) {
		return DefaultDomesticRate, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return rate.Rate, nil
}

func (c *Calculator) internationalCost(ctx context.Context, countryCode string, weightKg decimal.Decimal) (decimal.Decimal, error) {
	rate, err := c.findInternationalRate(ctx, countryCode)
	if err != nil {
		return decimal.Zero, err
	}
	if rate == nil {
		return decimal.Zero, nil
	}
	return rate.RateFor(weightKg), nil
}

// AvailableMethods lists the methods a checkout may select. The domestic
// country always offers both domestic methods, even for regions without a
// rate row.
func (c *Calculator) AvailableMethods(ctx context.Context, countryCode, region string) ([]string, error) {
	if c.isDomestic(countryCode) {
		return []string{domain.MethodStandard, domain.MethodCourier}, nil
	}

	rate, err := c.findInternationalRate(ctx, countryCode)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, nil
	}
	return []string{domain.MethodInternational}, nil
}

func (c *Calculator) findInternationalRate(ctx context.Context, countryCode string) (*domain.InternationalShippingRate, error) {
	country, err := c.store.FindCountryByCode(ctx, countryCode)
	if errors.Is(err, refdata.ErrCountryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rate, err := c.store.FindInternationalRate(ctx, country.ID)
	if errors.Is(err, refdata.ErrRateNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rate, nil
}

func (c *Calculator) isDomestic(countryCode string) bool {
	return strings.EqualFold(countryCode, c.domesticCode)
}

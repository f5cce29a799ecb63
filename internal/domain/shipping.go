package domain

import "github.com/shopspring/decimal"

// Shipping method identifiers. Domestic addresses choose between standard
// and courier; everything else ships via the single international method.
const (
	MethodStandard      = "standard"
	MethodCourier       = "courier"
	MethodInternational = "international"
)

// DomesticShippingRate is a flat rate keyed by (region, method).
type DomesticShippingRate struct {
	Region string
	Method string
	Rate   decimal.Decimal
}

// InternationalShippingRate is a two-tier per-weight rate for one country.
// The 10kg boundary belongs to the lower tier.
type InternationalShippingRate struct {
	CountryID  int64
	RateUpTo10 decimal.Decimal
	RateOver10 decimal.Decimal
}

func (r InternationalShippingRate) RateFor(weightKg decimal.Decimal) decimal.Decimal {
	if weightKg.LessThanOrEqual(decimal.NewFromInt(10)) {
		return r.RateUpTo10
	}
	return r.RateOver10
}

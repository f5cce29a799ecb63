package checkout

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gopetstore/petstore/internal/catalog"
	"github.com/gopetstore/petstore/internal/country"
	"github.com/gopetstore/petstore/internal/domain"
	"github.com/gopetstore/petstore/internal/session"
	"github.com/gopetstore/petstore/internal/shipping"
	"github.com/gopetstore/petstore/internal/tax"
	"github.com/shopspring/decimal"
)

// FixedShipmentWeightKg is the nominal shipment weight used for pricing.
// Weight is not yet derived from cart contents; this is a known limitation
// of the storefront, not something to fix silently.
var FixedShipmentWeightKg = decimal.NewFromInt(2)

// Request carries the proposed checkout: destination, method and the
// cart's lines at checkout time.
type Request struct {
	Country        string
	Region         string
	ShippingMethod string
	Items          []domain.CartItem
}

// ValidationResult accumulates every independent field error; validation
// never short-circuits so all problems surface together.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// Pipeline orchestrates checkout: country resolution, restriction and
// method validation, shipping and tax pricing, order materialization.
type Pipeline struct {
	countries    *country.Service
	catalog      *catalog.Service
	shipping     *shipping.Calculator
	tax          *tax.Calculator
	domesticCode string
}

func NewPipeline(countries *country.Service, cat *catalog.Service, ship *shipping.Calculator, taxes *tax.Calculator, domesticCode string) *Pipeline {
	return &Pipeline{
		countries:    countries,
		catalog:      cat,
		shipping:     ship,
		tax:          taxes,
		domesticCode: domesticCode,
	}
}

// Validate checks the proposed checkout and reports every failing field.
// For non-domestic destinations it clears req.Region in place; the forced
// clearing is part of the contract, not just a check.
func (p *Pipeline) Validate(ctx context.Context, req *Request) (ValidationResult, error) {
	result := ValidationResult{Valid: true, Errors: make(map[string]string)}

	resolved, err := p.countries.FindByCode(ctx, req.Country)
	if err != nil {
		return ValidationResult{}, err
	}
	if resolved == nil {
		result.Errors["country"] = "Please select a valid country."
	}

	if p.isDomestic(req.Country) {
		if strings.TrimSpace(req.Region) == "" {
			result.Errors["region"] = "Region is required for domestic addresses."
		}
	} else {
		req.Region = ""
	}

	var restricted []string
	for _, item := range req.Items {
		denied, err := p.catalog.IsRestricted(ctx, item.PetID, req.Country)
		if err != nil {
			return ValidationResult{}, err
		}
		if denied {
			restricted = append(restricted, item.PetName)
		}
	}
	if len(restricted) > 0 {
		countryName := req.Country
		if resolved != nil {
			countryName = resolved.Name
		}
		result.Errors["items"] = fmt.Sprintf("The following items cannot be shipped to %s: %s",
			countryName, strings.Join(restricted, ", "))
	}

	methods, err := p.shipping.AvailableMethods(ctx, req.Country, req.Region)
	if err != nil {
		return ValidationResult{}, err
	}
	if !containsMethod(methods, req.ShippingMethod) {
		result.Errors["shippingMethod"] = "Please select a valid shipping method."
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}

// Commit materializes the order. It assumes Validate already passed and
// re-checks nothing; callers skipping validation own the consequences.
// Clearing the cart afterwards is also the caller's job.
func (p *Pipeline) Commit(ctx context.Context, sess *session.Session, req *Request) (*domain.Order, error) {
	resolved, err := p.countries.FindByCode(ctx, req.Country)
	if err != nil {
		return nil, err
	}
	countryName := req.Country
	if resolved != nil {
		countryName = resolved.Name
	}

	subtotal := decimal.Zero
	for _, item := range req.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}

	region := ""
	if p.isDomestic(req.Country) {
		region = req.Region
	}

	shippingCost, err := p.shipping.Cost(ctx, req.Country, region, FixedShipmentWeightKg, req.ShippingMethod)
	if err != nil {
		return nil, err
	}

	taxAmount := p.tax.Calculate(subtotal, req.Country)

	now := time.Now().UTC()
	items := make([]domain.CartItem, len(req.Items))
	copy(items, req.Items)

	order := &domain.Order{
		OrderNumber:    "ORD-" + strconv.FormatInt(now.UnixNano(), 10),
		Items:          items,
		Country:        countryName,
		Region:         region,
		ShippingMethod: req.ShippingMethod,
		Subtotal:       subtotal,
		ShippingCost:   shippingCost,
		TaxAmount:      taxAmount,
		Total:          subtotal.Add(shippingCost).Add(taxAmount),
		Status:         domain.OrderStatusPending,
		CreatedAt:      now,
		LastModifiedAt: now,
	}

	if err := p.countries.SetCurrentCountry(ctx, sess, req.Country); err != nil {
		return nil, err
	}

	return order, nil
}

func (p *Pipeline) isDomestic(countryCode string) bool {
	return strings.EqualFold(countryCode, p.domesticCode)
}

func containsMethod(methods []string, method string) bool {
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}

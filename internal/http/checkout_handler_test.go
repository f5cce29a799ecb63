package http

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gopetstore/petstore/internal/checkout"
	"github.com/gopetstore/petstore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutBody(countryCode, region, method string) map[string]string {
	return map[string]string{
		"country":         countryCode,
		"region":          region,
		"shipping_method": method,
	}
}

func TestShippingMethods(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/v1/shipping/methods?country=AU&region=NSW", "sess-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	methods := decodeBody[[]string](t, rec)
	assert.Equal(t, []string{domain.MethodStandard, domain.MethodCourier}, methods)

	rec = env.do(t, http.MethodGet, "/api/v1/shipping/methods?country=GB", "sess-1", nil)
	methods = decodeBody[[]string](t, rec)
	assert.Equal(t, []string{domain.MethodInternational}, methods)

	// Unknown countries get an empty list, not null.
	rec = env.do(t, http.MethodGet, "/api/v1/shipping/methods?country=XX", "sess-1", nil)
	methods = decodeBody[[]string](t, rec)
	assert.NotNil(t, methods)
	assert.Empty(t, methods)
}

func TestValidateCheckout_ReportsAllErrors(t *testing.T) {
	env := newTestEnv()
	addPet(t, env, "sess-1", 1, 1)

	rec := env.do(t, http.MethodPost, "/api/v1/checkout/validate", "sess-1",
		checkoutBody("XX", "", ""))
	assert.Equal(t, http.StatusOK, rec.Code)

	result := decodeBody[checkout.ValidationResult](t, rec)
	assert.False(t, result.Valid)
	assert.Equal(t, "Please select a valid country.", result.Errors["country"])
	assert.Equal(t, "Please select a valid shipping method.", result.Errors["shippingMethod"])
}

func TestValidateCheckout_RestrictedItemInCart(t *testing.T) {
	env := newTestEnv()
	// Bubbles goes in while the session is still on the default country.
	addPet(t, env, "sess-1", 4, 1)

	rec := env.do(t, http.MethodPost, "/api/v1/checkout/validate", "sess-1",
		checkoutBody("NZ", "", domain.MethodInternational))
	assert.Equal(t, http.StatusOK, rec.Code)

	result := decodeBody[checkout.ValidationResult](t, rec)
	assert.False(t, result.Valid)
	assert.Equal(t, "The following items cannot be shipped to New Zealand: Bubbles", result.Errors["items"])
}

func TestCommitCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/checkout/", "sess-1",
		checkoutBody("AU", "NSW", domain.MethodStandard))
	assert.Equal(t, http.StatusConflict, rec.Code)

	resp := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "empty_cart", resp.Code)
}

func TestCommitCheckout_InvalidReturns422WithErrors(t *testing.T) {
	env := newTestEnv()
	addPet(t, env, "sess-1", 1, 1)

	rec := env.do(t, http.MethodPost, "/api/v1/checkout/", "sess-1",
		checkoutBody("AU", "", domain.MethodStandard))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	result := decodeBody[checkout.ValidationResult](t, rec)
	assert.False(t, result.Valid)
	assert.Equal(t, "Region is required for domestic addresses.", result.Errors["region"])

	// Nothing was stored and the cart is intact.
	stored, err := env.orders.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)

	cartRec := env.do(t, http.MethodGet, "/api/v1/cart/", "sess-1", nil)
	c := decodeBody[domain.Cart](t, cartRec)
	assert.Len(t, c.Items, 1)
}

func TestCommitCheckout_CreatesOrderAndClearsCart(t *testing.T) {
	env := newTestEnv()
	addPet(t, env, "sess-1", 1, 2) // 99.99 x2
	addPet(t, env, "sess-1", 3, 1) // 49.99

	rec := env.do(t, http.MethodPost, "/api/v1/checkout/", "sess-1",
		checkoutBody("AU", "NSW", domain.MethodStandard))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	order := decodeBody[domain.Order](t, rec)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, "Australia", order.Country)
	assert.Equal(t, "NSW", order.Region)
	// 249.97 + 10 shipping + 24.997 tax
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("249.97")))
	assert.True(t, order.ShippingCost.Equal(decimal.NewFromInt(10)))
	assert.True(t, order.TaxAmount.Equal(decimal.RequireFromString("24.997")))
	assert.True(t, order.Total.Equal(decimal.RequireFromString("284.967")))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)

	// The order is fetchable and the cart is now empty.
	getRec := env.do(t, http.MethodGet, "/api/v1/orders/"+order.OrderNumber, "sess-1", nil)
	assert.Equal(t, http.StatusOK, getRec.Code)

	cartRec := env.do(t, http.MethodGet, "/api/v1/cart/", "sess-1", nil)
	c := decodeBody[domain.Cart](t, cartRec)
	assert.Empty(t, c.Items)
}

func TestCommitCheckout_InternationalOrder(t *testing.T) {
	env := newTestEnv()
	addPet(t, env, "sess-1", 1, 1)

	rec := env.do(t, http.MethodPost, "/api/v1/checkout/", "sess-1",
		checkoutBody("GB", "ignored", domain.MethodInternational))
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	order := decodeBody[domain.Order](t, rec)
	assert.Equal(t, "United Kingdom", order.Country)
	assert.Equal(t, "", order.Region)
	assert.True(t, order.ShippingCost.Equal(decimal.NewFromInt(35)))
	assert.True(t, order.TaxAmount.IsZero())

	// Committing writes the destination back to the session.
	curRec := env.do(t, http.MethodGet, "/api/v1/countries/current", "sess-1", nil)
	body := decodeBody[map[string]string](t, curRec)
	assert.Equal(t, "GB", body["country"])
}

func TestGetOrder_NotFound(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/v1/orders/ORD-nope", "sess-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrders_EmptyIsNotNull(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/v1/orders/", "sess-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

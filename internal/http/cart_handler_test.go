package http

import (
	"net/http"
	"testing"

	"github.com/gopetstore/petstore/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addPet(t *testing.T, env *testEnv, sessionID string, petID int64, quantity int) *domain.Cart {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", sessionID,
		map[string]any{"pet_id": petID, "quantity": quantity})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decodeBody[domain.Cart](t, rec)
	return &c
}

func TestGetCart_EmptyForNewSession(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodGet, "/api/v1/cart/", "sess-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	c := decodeBody[domain.Cart](t, rec)
	assert.Equal(t, "sess-1", c.CartID)
	assert.Empty(t, c.Items)
}

func TestAddItem_SnapshotsPet(t *testing.T) {
	env := newTestEnv()

	c := addPet(t, env, "sess-1", 1, 2)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(1), c.Items[0].PetID)
	assert.Equal(t, "Fluffy", c.Items[0].PetName)
	assert.True(t, c.Items[0].PetPrice.Equal(decimal.RequireFromString("99.99")))
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestAddItem_MergesQuantityForSamePet(t *testing.T) {
	env := newTestEnv()

	addPet(t, env, "sess-1", 1, 2)
	c := addPet(t, env, "sess-1", 1, 3)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestAddItem_UnknownPet(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1",
		map[string]any{"pet_id": 99, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	resp := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "pet_not_available", resp.Code)
	assert.Equal(t, "This pet is not available.", resp.Details)
}

func TestAddItem_RestrictedForCurrentCountry(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, http.MethodPut, "/api/v1/countries/current", "sess-1", map[string]string{"country": "NZ"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1",
		map[string]any{"pet_id": 4, "quantity": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)

	resp := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, "pet_restricted", resp.Code)
	assert.Equal(t, "Bubbles cannot be shipped to New Zealand.", resp.Details)
}

func TestAddItem_QuantityBounds(t *testing.T) {
	env := newTestEnv()

	for _, quantity := range []int{0, -1, 100} {
		rec := env.do(t, http.MethodPost, "/api/v1/cart/items", "sess-1",
			map[string]any{"pet_id": 1, "quantity": quantity})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "quantity %d", quantity)
	}
}

func TestRemoveItem(t *testing.T) {
	env := newTestEnv()

	addPet(t, env, "sess-1", 1, 1)
	addPet(t, env, "sess-1", 2, 1)

	rec := env.do(t, http.MethodDelete, "/api/v1/cart/items/1", "sess-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	c := decodeBody[domain.Cart](t, rec)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(2), c.Items[0].PetID)
}

func TestRemoveItem_AbsentPetIsNoOp(t *testing.T) {
	env := newTestEnv()

	addPet(t, env, "sess-1", 1, 1)

	rec := env.do(t, http.MethodDelete, "/api/v1/cart/items/99", "sess-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	c := decodeBody[domain.Cart](t, rec)
	assert.Len(t, c.Items, 1)
}

func TestClearCart(t *testing.T) {
	env := newTestEnv()

	addPet(t, env, "sess-1", 1, 1)
	addPet(t, env, "sess-1", 2, 1)

	rec := env.do(t, http.MethodDelete, "/api/v1/cart/", "sess-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	c := decodeBody[domain.Cart](t, rec)
	assert.Empty(t, c.Items)
}

func TestCart_IsolatedPerSession(t *testing.T) {
	env := newTestEnv()

	addPet(t, env, "sess-1", 1, 1)

	rec := env.do(t, http.MethodGet, "/api/v1/cart/", "sess-2", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	c := decodeBody[domain.Cart](t, rec)
	assert.Empty(t, c.Items)
}

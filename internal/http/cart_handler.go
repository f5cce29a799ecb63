package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gopetstore/petstore/internal/cart"
	"github.com/gopetstore/petstore/internal/catalog"
	"github.com/gopetstore/petstore/internal/country"
	"github.com/gopetstore/petstore/internal/domain"
	"github.com/gopetstore/petstore/internal/session"
)

type CartHandler struct {
	carts     *cart.Service
	catalog   *catalog.Service
	countries *country.Service
	sessions  session.Store
}

func NewCartHandler(carts *cart.Service, cat *catalog.Service, countries *country.Service, sessions session.Store) *CartHandler {
	return &CartHandler{
		carts:     carts,
		catalog:   cat,
		countries: countries,
		sessions:  sessions,
	}
}

type addItemDTO struct {
	PetID    int64 `json:"pet_id"`
	Quantity int   `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCart(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// AddItem snapshots the pet into the cart at its current price. A pet the
// catalog cannot see is "not available"; a pet restricted for the
// visitor's country is refused with a message naming pet and country.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req addItemDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PetID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_pet_id", "pet_id must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	sess := session.New(h.sessions, sessionIDFromContext(ctx))
	currentCountry, err := h.countries.CurrentCountryCode(ctx, sess)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to resolve country")
		return
	}

	pet, err := h.catalog.FindByID(ctx, req.PetID, "")
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load pet")
		return
	}
	if pet == nil {
		respondError(w, http.StatusNotFound, "pet_not_available", "This pet is not available.")
		return
	}

	restricted, err := h.catalog.IsRestricted(ctx, req.PetID, currentCountry)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to check restrictions")
		return
	}
	if restricted {
		countryName := currentCountry
		if resolved, err := h.countries.FindByCode(ctx, currentCountry); err == nil && resolved != nil {
			countryName = resolved.Name
		}
		respondError(w, http.StatusConflict, "pet_restricted",
			fmt.Sprintf("%s cannot be shipped to %s.", pet.Name, countryName))
		return
	}

	c, ok := h.loadCart(w, r)
	if !ok {
		return
	}

	c.AddItem(domain.NewCartItem(pet.ID, pet.Name, pet.Price, req.Quantity, pet.ImageURL))
	if err := h.carts.SaveCart(ctx, c); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	petID, err := strconv.ParseInt(chi.URLParam(r, "pet_id"), 10, 64)
	if err != nil || petID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_pet_id", "pet id must be a positive integer")
		return
	}

	c, ok := h.loadCart(w, r)
	if !ok {
		return
	}

	c.RemoveItem(petID)
	if err := h.carts.SaveCart(ctx, c); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusOK, c)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c, ok := h.loadCart(w, r)
	if !ok {
		return
	}

	c.Clear()
	if err := h.carts.SaveCart(ctx, c); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to save cart")
		return
	}

	respondJSON(w, http.StatusOK, c)
}

func (h *CartHandler) loadCart(w http.ResponseWriter, r *http.Request) (*domain.Cart, bool) {
	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session")
		return nil, false
	}

	c, err := h.carts.LoadCart(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return nil, false
	}
	return c, true
}

package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gopetstore/petstore/internal/catalog"
	"github.com/gopetstore/petstore/internal/country"
	"github.com/gopetstore/petstore/internal/session"
)

// PetHandler serves the restriction-filtered pet catalog. The visitor's
// current country decides which pets are visible.
type PetHandler struct {
	catalog   *catalog.Service
	countries *country.Service
	sessions  session.Store
}

func NewPetHandler(cat *catalog.Service, countries *country.Service, sessions session.Store) *PetHandler {
	return &PetHandler{
		catalog:   cat,
		countries: countries,
		sessions:  sessions,
	}
}

func (h *PetHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := session.New(h.sessions, sessionIDFromContext(ctx))

	currentCountry, err := h.countries.CurrentCountryCode(ctx, sess)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to resolve country")
		return
	}

	pets, err := h.catalog.Search(ctx, r.URL.Query().Get("q"), currentCountry)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load catalog")
		return
	}

	respondJSON(w, http.StatusOK, pets)
}

func (h *PetHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_pet_id", "pet id must be a positive integer")
		return
	}

	sess := session.New(h.sessions, sessionIDFromContext(ctx))
	currentCountry, err := h.countries.CurrentCountryCode(ctx, sess)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to resolve country")
		return
	}

	pet, err := h.catalog.FindByID(ctx, id, currentCountry)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load pet")
		return
	}
	if pet == nil {
		respondError(w, http.StatusNotFound, "pet_not_found", "pet not found")
		return
	}

	respondJSON(w, http.StatusOK, pet)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/gopetstore/petstore/internal/country"
	"github.com/gopetstore/petstore/internal/session"
)

type CountryHandler struct {
	countries *country.Service
	sessions  session.Store
}

func NewCountryHandler(countries *country.Service, sessions session.Store) *CountryHandler {
	return &CountryHandler{
		countries: countries,
		sessions:  sessions,
	}
}

func (h *CountryHandler) List(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countries.ListCountries(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load countries")
		return
	}
	respondJSON(w, http.StatusOK, countries)
}

func (h *CountryHandler) Current(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := session.New(h.sessions, sessionIDFromContext(ctx))

	code, err := h.countries.CurrentCountryCode(ctx, sess)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to resolve country")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"country": code})
}

type selectCountryDTO struct {
	Country string `json:"country"`
}

// Select persists the visitor's country. Unknown codes fall back to the
// directory default rather than failing.
func (h *CountryHandler) Select(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req selectCountryDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	sess := session.New(h.sessions, sessionIDFromContext(ctx))
	if err := h.countries.SetCurrentCountry(ctx, sess, req.Country); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to store country")
		return
	}

	code, err := h.countries.CurrentCountryCode(ctx, sess)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to resolve country")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"country": code})
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gopetstore/petstore/internal/accessories"
	"github.com/gopetstore/petstore/internal/domain"
)

// AccessoryStore is the CRUD surface the admin API needs.
type AccessoryStore interface {
	List(ctx context.Context) ([]domain.Accessory, error)
	Get(ctx context.Context, id int64) (*domain.Accessory, error)
	Create(ctx context.Context, a *domain.Accessory) error
	Update(ctx context.Context, a *domain.Accessory) error
	Delete(ctx context.Context, id int64) error
}

// AccessoryHandler is a plain CRUD layer over the accessory store; it is
// deliberately unrelated to the checkout flow.
type AccessoryHandler struct {
	store AccessoryStore
}

func NewAccessoryHandler(store AccessoryStore) *AccessoryHandler {
	return &AccessoryHandler{store: store}
}

func (h *AccessoryHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load accessories")
		return
	}
	if all == nil {
		all = []domain.Accessory{}
	}
	respondJSON(w, http.StatusOK, all)
}

func (h *AccessoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAccessoryID(w, r)
	if !ok {
		return
	}

	a, err := h.store.Get(r.Context(), id)
	if errors.Is(err, accessories.ErrAccessoryNotFound) {
		respondError(w, http.StatusNotFound, "accessory_not_found", "accessory not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load accessory")
		return
	}

	respondJSON(w, http.StatusOK, a)
}

func (h *AccessoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeAccessoryInput(w, r)
	if !ok {
		return
	}

	a := accessoryFromInput(in)
	if err := h.store.Create(r.Context(), &a); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create accessory")
		return
	}

	respondJSON(w, http.StatusCreated, a)
}

func (h *AccessoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAccessoryID(w, r)
	if !ok {
		return
	}
	in, ok := decodeAccessoryInput(w, r)
	if !ok {
		return
	}

	a := accessoryFromInput(in)
	a.ID = id
	err := h.store.Update(r.Context(), &a)
	if errors.Is(err, accessories.ErrAccessoryNotFound) {
		respondError(w, http.StatusNotFound, "accessory_not_found", "accessory not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update accessory")
		return
	}

	respondJSON(w, http.StatusOK, a)
}

func (h *AccessoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAccessoryID(w, r)
	if !ok {
		return
	}

	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, accessories.ErrAccessoryNotFound) {
		respondError(w, http.StatusNotFound, "accessory_not_found", "accessory not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete accessory")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseAccessoryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func decodeAccessoryInput(w http.ResponseWriter, r *http.Request) (accessories.Input, bool) {
	var in accessories.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return accessories.Input{}, false
	}
	if msg := accessories.Validate(in); msg != "" {
		respondError(w, http.StatusBadRequest, "validation_failed", msg)
		return accessories.Input{}, false
	}
	return in, true
}

func accessoryFromInput(in accessories.Input) domain.Accessory {
	return domain.Accessory{
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.TrimSpace(in.Category),
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		ImageURL:      strings.TrimSpace(in.ImageURL),
	}
}

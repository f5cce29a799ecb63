package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gopetstore/petstore/internal/cart"
	"github.com/gopetstore/petstore/internal/checkout"
	"github.com/gopetstore/petstore/internal/domain"
	"github.com/gopetstore/petstore/internal/orders"
	"github.com/gopetstore/petstore/internal/session"
	"github.com/gopetstore/petstore/internal/shipping"
)

// OrderStore is what the checkout handler needs from order persistence.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}

type CheckoutHandler struct {
	pipeline *checkout.Pipeline
	shipping *shipping.Calculator
	carts    *cart.Service
	orders   OrderStore
	sessions session.Store
}

func NewCheckoutHandler(pipeline *checkout.Pipeline, ship *shipping.Calculator, carts *cart.Service, store OrderStore, sessions session.Store) *CheckoutHandler {
	return &CheckoutHandler{
		pipeline: pipeline,
		shipping: ship,
		carts:    carts,
		orders:   store,
		sessions: sessions,
	}
}

type checkoutDTO struct {
	Country        string `json:"country"`
	Region         string `json:"region"`
	ShippingMethod string `json:"shipping_method"`
}

func (h *CheckoutHandler) ShippingMethods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	methods, err := h.shipping.AvailableMethods(r.Context(), q.Get("country"), q.Get("region"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load shipping methods")
		return
	}
	if methods == nil {
		methods = []string{}
	}
	respondJSON(w, http.StatusOK, methods)
}

// Validate runs checkout validation against the session's cart and returns
// every field error at once.
func (h *CheckoutHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, c, ok := h.readCheckout(w, r)
	if !ok {
		return
	}

	pipelineReq := &checkout.Request{
		Country:        req.Country,
		Region:         req.Region,
		ShippingMethod: req.ShippingMethod,
		Items:          c.Items,
	}
	result, err := h.pipeline.Validate(ctx, pipelineReq)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "validation failed")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Commit validates, materializes the order, persists it and clears the
// cart. An invalid checkout returns the full error map with 422.
func (h *CheckoutHandler) Commit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, c, ok := h.readCheckout(w, r)
	if !ok {
		return
	}
	if len(c.Items) == 0 {
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty, nothing to checkout")
		return
	}

	pipelineReq := &checkout.Request{
		Country:        req.Country,
		Region:         req.Region,
		ShippingMethod: req.ShippingMethod,
		Items:          c.Items,
	}
	result, err := h.pipeline.Validate(ctx, pipelineReq)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "validation failed")
		return
	}
	if !result.Valid {
		respondJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	sess := session.New(h.sessions, sessionIDFromContext(ctx))
	order, err := h.pipeline.Commit(ctx, sess, pipelineReq)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "checkout failed")
		return
	}

	if err := h.orders.CreateOrder(ctx, order); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to store order")
		return
	}

	c.Clear()
	if err := h.carts.SaveCart(ctx, c); err != nil {
		// Order exists; an uncleared cart is recoverable, so log and move on.
		log.Printf("failed to clear cart after checkout %s: %v", order.OrderNumber, err)
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "order_number")

	order, err := h.orders.GetOrderByNumber(r.Context(), orderNumber)
	if errors.Is(err, orders.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	all, err := h.orders.ListOrders(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load orders")
		return
	}
	if all == nil {
		all = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, all)
}

func (h *CheckoutHandler) readCheckout(w http.ResponseWriter, r *http.Request) (checkoutDTO, *domain.Cart, bool) {
	var req checkoutDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return checkoutDTO{}, nil, false
	}

	sessionID := sessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no session")
		return checkoutDTO{}, nil, false
	}

	c, err := h.carts.LoadCart(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return checkoutDTO{}, nil, false
	}
	return req, c, true
}

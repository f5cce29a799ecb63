package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gopetstore/petstore/internal/cart"
	"github.com/gopetstore/petstore/internal/cart/cache"
	"github.com/gopetstore/petstore/internal/cart/repository"
	"github.com/gopetstore/petstore/internal/catalog"
	"github.com/gopetstore/petstore/internal/checkout"
	"github.com/gopetstore/petstore/internal/country"
	"github.com/gopetstore/petstore/internal/domain"
	"github.com/gopetstore/petstore/internal/orders"
	"github.com/gopetstore/petstore/internal/refdata"
	"github.com/gopetstore/petstore/internal/session"
	"github.com/gopetstore/petstore/internal/shipping"
	"github.com/gopetstore/petstore/internal/tax"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*domain.Cart)}
}

func (f *fakeCartRepo) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[sessionID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	return c, nil
}

func (f *fakeCartRepo) UpsertCart(_ context.Context, c *domain.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.carts[c.CartID] = c
	return nil
}

func (f *fakeCartRepo) DeleteCart(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.carts[sessionID]; !ok {
		return repository.ErrCartNotFound
	}
	delete(f.carts, sessionID)
	return nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.Cart, error) { return nil, cache.ErrCacheMiss }
func (noopCache) Set(context.Context, string, *domain.Cart) error   { return nil }
func (noopCache) Delete(context.Context, string) error              { return nil }

type fakeOrderStore struct {
	mu        sync.Mutex
	byNumber  map[string]*domain.Order
	sequence  []*domain.Order
	createErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{byNumber: make(map[string]*domain.Order)}
}

func (f *fakeOrderStore) CreateOrder(_ context.Context, order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byNumber[order.OrderNumber]; ok {
		return orders.ErrDuplicateOrder
	}
	f.byNumber[order.OrderNumber] = order
	f.sequence = append(f.sequence, order)
	return nil
}

func (f *fakeOrderStore) GetOrderByNumber(_ context.Context, orderNumber string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.byNumber[orderNumber]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderStore) ListOrders(context.Context) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Order, len(f.sequence))
	copy(out, f.sequence)
	return out, nil
}

// testEnv wires every storefront handler against in-memory backends.
type testEnv struct {
	router    chi.Router
	sessions  *session.MemoryStore
	cartRepo  *fakeCartRepo
	orders    *fakeOrderStore
	carts     *cart.Service
	countries *country.Service
}

func newTestEnv() *testEnv {
	store := refdata.NewMemoryStore()
	refdata.SeedDemoData(store)

	sessions := session.NewMemoryStore()
	countries := country.NewService(store)
	cat := catalog.NewService(store)
	ship := shipping.NewCalculator(store, "AU")
	taxes := tax.NewCalculator("AU", "Australia", decimal.RequireFromString("0.10"))
	pipeline := checkout.NewPipeline(countries, cat, ship, taxes, "AU")

	cartRepo := newFakeCartRepo()
	carts := cart.NewService(cartRepo, noopCache{})
	orderStore := newFakeOrderStore()

	petHandler := NewPetHandler(cat, countries, sessions)
	countryHandler := NewCountryHandler(countries, sessions)
	cartHandler := NewCartHandler(carts, cat, countries, sessions)
	checkoutHandler := NewCheckoutHandler(pipeline, ship, carts, orderStore, sessions)

	r := chi.NewRouter()
	r.Use(SessionMiddleware)
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pets", func(r chi.Router) {
			r.Get("/", petHandler.List)
			r.Get("/{id}", petHandler.Get)
		})
		r.Route("/countries", func(r chi.Router) {
			r.Get("/", countryHandler.List)
			r.Get("/current", countryHandler.Current)
			r.Put("/current", countryHandler.Select)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{pet_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.Clear)
		})
		r.Get("/shipping/methods", checkoutHandler.ShippingMethods)
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/validate", checkoutHandler.Validate)
			r.Post("/", checkoutHandler.Commit)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", checkoutHandler.ListOrders)
			r.Get("/{order_number}", checkoutHandler.GetOrder)
		})
	})

	return &testEnv{
		router:    r,
		sessions:  sessions,
		cartRepo:  cartRepo,
		orders:    orderStore,
		carts:     carts,
		countries: countries,
	}
}

// do issues a request carrying the given session cookie and returns the
// recorded response.
func (e *testEnv) do(t *testing.T, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sessionID})
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

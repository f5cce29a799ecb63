package repository

import (
	"context"
	"errors"

	"github.com/gopetstore/petstore/internal/domain"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines the durable cart store as its consumers need it.
// Carts are keyed by the owning session's ID.
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (*domain.Cart, error)
	UpsertCart(ctx context.Context, cart *domain.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

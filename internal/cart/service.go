package cart

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gopetstore/petstore/internal/cart/cache"
	"github.com/gopetstore/petstore/internal/cart/repository"
	"github.com/gopetstore/petstore/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Service loads and saves session carts through the durable repository
// with a read-through cache in front. Cart mutation semantics live on
// domain.Cart; this layer only persists.
type Service struct {
	repo  repository.CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // prevents cache stampede on one session's cart
}

func NewService(repo repository.CartRepository, cache cache.CartCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// LoadCart returns the session's cart, or a fresh empty cart when nothing
// is stored yet. The empty cart is not persisted until first saved.
func (s *Service) LoadCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		c, err := s.cache.Get(ctx, sessionID)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cart cache get error: %v", err) // degraded, keep going
		}

		c, errGet := s.repo.GetCart(ctx, sessionID)
		if errors.Is(errGet, repository.ErrCartNotFound) {
			return domain.NewCart(sessionID), nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), sessionID, c); errSet != nil {
				log.Printf("cart cache set error: %v", errSet)
			}
		}()

		return c, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Cart), nil
}

// SaveCart writes the cart through to the repository and drops the cached
// copy so the next load sees the stored state.
func (s *Service) SaveCart(ctx context.Context, c *domain.Cart) error {
	if err := s.repo.UpsertCart(ctx, c); err != nil {
		log.Printf("cart repo upsert error: %v", err)
		return err
	}
	s.invalidate(c.CartID)
	return nil
}

// DeleteCart removes the stored cart entirely. Deleting an absent cart is
// not an error.
func (s *Service) DeleteCart(ctx context.Context, sessionID string) error {
	err := s.repo.DeleteCart(ctx, sessionID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		log.Printf("cart repo delete error: %v", err)
		return err
	}
	s.invalidate(sessionID)
	return nil
}

func (s *Service) invalidate(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		log.Printf("cart cache invalidate error: %v", err)
	}
}

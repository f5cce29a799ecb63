package refdata

import (
	"context"
	"errors"

	"github.com/gopetstore/petstore/internal/domain"
)

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrPetNotFound     = errors.New("pet not found")
	ErrRateNotFound    = errors.New("shipping rate not found")
)

// Store gives read access to the seeded reference tables. Writes happen
// only at initialization, so implementations need no locking discipline
// beyond guarding the seed phase.
type Store interface {
	// ListCountries returns countries in insertion (id) order.
	ListCountries(ctx context.Context) ([]domain.Country, error)

	// FindCountryByCode matches the code case-insensitively.
	FindCountryByCode(ctx context.Context, code string) (*domain.Country, error)

	ListPets(ctx context.Context) ([]domain.Pet, error)
	FindPet(ctx context.Context, id int64) (*domain.Pet, error)

	// HasRestriction reports whether a pet is denied for a country.
	HasRestriction(ctx context.Context, petID, countryID int64) (bool, error)

	// FindDomesticRate matches (region, method) case-insensitively.
	FindDomesticRate(ctx context.Context, region, method string) (*domain.DomesticShippingRate, error)

	FindInternationalRate(ctx context.Context, countryID int64) (*domain.InternationalShippingRate, error)
}

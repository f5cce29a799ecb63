package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/gopetstore/petstore/internal/domain"
	"github.com/gopetstore/petstore/internal/refdata"
)

// Service exposes the purchasable pet catalog. All lookups optionally take
// a country code; pets restricted for that country are filtered out as if
// they did not exist.
type Service struct {
	store refdata.Store
}

func NewService(store refdata.Store) *Service {
	return &Service{store: store}
}

// ListPets returns the catalog sorted by name, excluding pets restricted
// for countryCode. A blank or unknown code applies no filter.
func (s *Service) ListPets(ctx context.Context, countryCode string) ([]domain.Pet, error) {
	pets, err := s.store.ListPets(ctx)
	if err != nil {
		return nil, err
	}
	pets, err = s.filterRestricted(ctx, pets, countryCode)
	if err != nil {
		return nil, err
	}
	sortByName(pets)
	return pets, nil
}

// FindByID returns nil for both unknown pets and pets restricted for the
// given country; a restricted pet is indistinguishable from a missing one.
func (s *Service) FindByID(ctx context.Context, id int64, countryCode string) (*domain.Pet, error) {
	pet, err := s.store.FindPet(ctx, id)
	if errors.Is(err, refdata.ErrPetNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	restricted, err := s.IsRestricted(ctx, id, countryCode)
	if err != nil {
		return nil, err
	}
	if restricted {
		return nil, nil
	}
	return pet, nil
}

// Search matches the term case-insensitively against name, description or
// species. A blank term lists the whole catalog.
func (s *Service) Search(ctx context.Context, term, countryCode string) ([]domain.Pet, error) {
	if strings.TrimSpace(term) == "" {
		return s.ListPets(ctx, countryCode)
	}

	pets, err := s.store.ListPets(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matched := pets[:0]
	for _, p := range pets {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Species), needle) {
			matched = append(matched, p)
		}
	}

	matched, err = s.filterRestricted(ctx, matched, countryCode)
	if err != nil {
		return nil, err
	}
	sortByName(matched)
	return matched, nil
}

// IsRestricted reports whether petID may not ship to countryCode. Blank or
// unknown codes are never restricted.
func (s *Service) IsRestricted(ctx context.Context, petID int64, countryCode string) (bool, error) {
	countryID, err := s.resolveCountryID(ctx, countryCode)
	if err != nil {
		return false, err
	}
	if countryID == 0 {
		return false, nil
	}
	return s.store.HasRestriction(ctx, petID, countryID)
}

func (s *Service) filterRestricted(ctx context.Context, pets []domain.Pet, countryCode string) ([]domain.Pet, error) {
	countryID, err := s.resolveCountryID(ctx, countryCode)
	if err != nil {
		return nil, err
	}
	if countryID == 0 {
		return pets, nil
	}

	allowed := pets[:0]
	for _, p := range pets {
		restricted, err := s.store.HasRestriction(ctx, p.ID, countryID)
		if err != nil {
			return nil, err
		}
		if !restricted {
			allowed = append(allowed, p)
		}
	}
	return allowed, nil
}

// resolveCountryID returns 0 when the code is blank or unknown.
func (s *Service) resolveCountryID(ctx context.Context, countryCode string) (int64, error) {
	if strings.TrimSpace(countryCode) == "" {
		return 0, nil
	}
	c, err := s.store.FindCountryByCode(ctx, countryCode)
	if errors.Is(err, refdata.ErrCountryNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

func sortByName(pets []domain.Pet) {
	sort.SliceStable(pets, func(i, j int) bool {
		return strings.ToLower(pets[i].Name) < strings.ToLower(pets[j].Name)
	})
}

package refdata

import (
	"context"
	"strings"
	"sync"

	"github.com/gopetstore/petstore/internal/domain"
)

// MemoryStore implements Store with in-memory tables.
type MemoryStore struct {
	mu            sync.RWMutex
	countries     []domain.Country
	pets          []domain.Pet
	restrictions  []domain.PetShippingRestriction
	domesticRates []domain.DomesticShippingRate
	intlRates     map[int64]domain.InternationalShippingRate
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		intlRates: make(map[int64]domain.InternationalShippingRate),
	}
}

func (s *MemoryStore) AddCountry(c domain.Country) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.countries = append(s.countries, c)
}

func (s *MemoryStore) AddPet(p domain.Pet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pets = append(s.pets, p)
}

func (s *MemoryStore) AddRestriction(r domain.PetShippingRestriction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restrictions = append(s.restrictions, r)
}

func (s *MemoryStore) AddDomesticRate(r domain.DomesticShippingRate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domesticRates = append(s.domesticRates, r)
}

func (s *MemoryStore) AddInternationalRate(r domain.InternationalShippingRate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intlRates[r.CountryID] = r
}

func (s *MemoryStore) ListCountries(_ context.Context) ([]domain.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Country, len(s.countries))
	copy(out, s.countries)
	return out, nil
}

func (s *MemoryStore) FindCountryByCode(_ context.Context, code string) (*domain.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.countries {
		if strings.EqualFold(c.Code, code) {
			found := c
			return &found, nil
		}
	}
	return nil, ErrCountryNotFound
}

func (s *MemoryStore) ListPets(_ context.Context) ([]domain.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Pet, len(s.pets))
	copy(out, s.pets)
	return out, nil
}

func (s *MemoryStore) FindPet(_ context.Context, id int64) (*domain.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pets {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrPetNotFound
}

func (s *MemoryStore) HasRestriction(_ context.Context, petID, countryID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.restrictions {
		if r.PetID == petID && r.CountryID == countryID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) FindDomesticRate(_ context.Context, region, method string) (*domain.DomesticShippingRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.domesticRates {
		if strings.EqualFold(r.Region, region) && strings.EqualFold(r.Method, method) {
			found := r
			return &found, nil
		}
	}
	return nil, ErrRateNotFound
}

func (s *MemoryStore) FindInternationalRate(_ context.Context, countryID int64) (*domain.InternationalShippingRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.intlRates[countryID]; ok {
		return &r, nil
	}
	return nil, ErrRateNotFound
}

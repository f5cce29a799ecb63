package country

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/gopetstore/petstore/internal/domain"
	"github.com/gopetstore/petstore/internal/refdata"
	"github.com/gopetstore/petstore/internal/session"
)

// SessionKeySelectedCountry holds the visitor's chosen country code.
const SessionKeySelectedCountry = "selected_country"

// Service is the country directory plus the per-session country selection.
type Service struct {
	store refdata.Store
}

func NewService(store refdata.Store) *Service {
	return &Service{store: store}
}

// ListCountries returns all countries sorted by display name, folding case.
func (s *Service) ListCountries(ctx context.Context) ([]domain.Country, error) {
	countries, err := s.store.ListCountries(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(countries, func(i, j int) bool {
		return strings.ToLower(countries[i].Name) < strings.ToLower(countries[j].Name)
	})
	return countries, nil
}

// FindByCode resolves a country code case-insensitively. A blank code and a
// miss both return nil without error; only infrastructure failures error.
func (s *Service) FindByCode(ctx context.Context, code string) (*domain.Country, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}
	c, err := s.store.FindCountryByCode(ctx, code)
	if errors.Is(err, refdata.ErrCountryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CurrentCountryCode returns the session's selected country, falling back
// to the directory default (first country by id order) and persisting that
// default when a session is present.
func (s *Service) CurrentCountryCode(ctx context.Context, sess *session.Session) (string, error) {
	if sess == nil {
		return s.defaultCountryCode(ctx)
	}

	selected, err := sess.Get(ctx, SessionKeySelectedCountry)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(selected) != "" {
		return selected, nil
	}

	defaultCode, err := s.defaultCountryCode(ctx)
	if err != nil {
		return "", err
	}
	if err := sess.Set(ctx, SessionKeySelectedCountry, defaultCode); err != nil {
		return "", err
	}
	return defaultCode, nil
}

// SetCurrentCountry stores the canonical code of the resolved country,
// falling back to the directory default for unknown codes. Without a
// session this is a no-op.
func (s *Service) SetCurrentCountry(ctx context.Context, sess *session.Session, code string) error {
	if sess == nil {
		return nil
	}

	resolved, err := s.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if resolved == nil {
		countries, err := s.store.ListCountries(ctx)
		if err != nil {
			return err
		}
		if len(countries) == 0 {
			return nil
		}
		resolved = &countries[0]
	}
	return sess.Set(ctx, SessionKeySelectedCountry, resolved.Code)
}

func (s *Service) defaultCountryCode(ctx context.Context) (string, error) {
	countries, err := s.store.ListCountries(ctx)
	if err != nil {
		return "", err
	}
	if len(countries) == 0 {
		return "", nil
	}
	return countries[0].Code, nil
}

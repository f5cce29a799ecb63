package refdata

import (
	"github.com/gopetstore/petstore/internal/domain"
	"github.com/shopspring/decimal"
)

// SeedDemoData loads the demo storefront data set: four countries, four
// pets, per-state Australian rates, international rates, and the single
// restriction (goldfish cannot ship to New Zealand).
func SeedDemoData(s *MemoryStore) {
	s.AddCountry(domain.Country{ID: 1, Code: "AU", Name: "Australia"})
	s.AddCountry(domain.Country{ID: 2, Code: "GB", Name: "United Kingdom"})
	s.AddCountry(domain.Country{ID: 3, Code: "NZ", Name: "New Zealand"})
	s.AddCountry(domain.Country{ID: 4, Code: "AQ", Name: "Antarctica"})

	s.AddPet(domain.NewPet(1, "Fluffy", "Cat", "A soft and cuddly tabby cat",
		decimal.RequireFromString("99.99"), 5, "https://images.unsplash.com/photo-1574158622682-e40e69881006?w=300&h=300&fit=crop"))
	s.AddPet(domain.NewPet(2, "Max", "Dog", "An energetic golden retriever",
		decimal.RequireFromString("199.99"), 3, "https://images.unsplash.com/photo-1633722715463-d30f4f325e24?w=300&h=300&fit=crop"))
	s.AddPet(domain.NewPet(3, "Tweety", "Bird", "A colorful parakeet",
		decimal.RequireFromString("49.99"), 10, "https://images.unsplash.com/photo-1552728089-57bdde30beb3?w=300&h=300&fit=crop"))
	s.AddPet(domain.NewPet(4, "Bubbles", "Fish", "A beautiful goldfish",
		decimal.RequireFromString("29.99"), 15, "https://images.unsplash.com/photo-1520366498724-709889c0c685?w=300&h=300&fit=crop&auto=format&q=80"))

	states := []string{"NSW", "VIC", "QLD", "WA", "SA", "TAS", "NT", "ACT"}
	for _, state := range states {
		s.AddDomesticRate(domain.DomesticShippingRate{
			Region: state,
			Method: domain.MethodStandard,
			Rate:   decimal.NewFromInt(10),
		})
	}

	courierRates := map[string]int64{
		"NSW": 18, "VIC": 18, "QLD": 22, "WA": 28,
		"SA": 20, "TAS": 25, "NT": 30, "ACT": 15,
	}
	for _, state := range states {
		s.AddDomesticRate(domain.DomesticShippingRate{
			Region: state,
			Method: domain.MethodCourier,
			Rate:   decimal.NewFromInt(courierRates[state]),
		})
	}

	s.AddRestriction(domain.PetShippingRestriction{PetID: 4, CountryID: 3})

	s.AddInternationalRate(domain.InternationalShippingRate{CountryID: 2, RateUpTo10: decimal.NewFromInt(35), RateOver10: decimal.NewFromInt(60)})
	s.AddInternationalRate(domain.InternationalShippingRate{CountryID: 3, RateUpTo10: decimal.NewFromInt(25), RateOver10: decimal.NewFromInt(45)})
	s.AddInternationalRate(domain.InternationalShippingRate{CountryID: 4, RateUpTo10: decimal.NewFromInt(50), RateOver10: decimal.NewFromInt(95)})
}

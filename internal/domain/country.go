package domain

// Country is immutable reference data, seeded at startup.
type Country struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

package domain

// Product is a catalog listing. The catalog is read-mostly; listings are
// never mutated by settlements.
type Product struct {
	ID          string
	Name        string
	Price       Money
	Rating      float64
	Store       string
	Description string
}

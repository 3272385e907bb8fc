package catalog

import (
	"sort"
	"strings"

	"github.com/PRATHVI9607/PaymentAI/internal/domain"
)

// Filter narrows a catalog search. Nil bounds match everything; Item matches
// by case-insensitive substring on the product name.
type Filter struct {
	Item      string
	PriceMin  *domain.Money
	PriceMax  *domain.Money
	RatingMin *float64
	Sort      domain.SortOrder
}

// Catalog is the read-mostly product listing. Products keep their seed order;
// name resolution and tie-breaking follow that order, never price.
type Catalog struct {
	products []domain.Product
}

// New builds a catalog over the provided listings.
func New(products []domain.Product) *Catalog {
	return &Catalog{products: append([]domain.Product(nil), products...)}
}

// List returns every product in catalog order.
func (c *Catalog) List() []domain.Product {
	return append([]domain.Product(nil), c.products...)
}

// Search returns the products matching every bound in the filter, sorted per
// the filter's order. Repeated calls with the same filter yield the same
// results.
func (c *Catalog) Search(f Filter) []domain.Product {
	needle := strings.ToLower(f.Item)
	var out []domain.Product
	for _, p := range c.products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if f.PriceMax != nil && p.Price.GreaterThan(*f.PriceMax) {
			continue
		}
		if f.PriceMin != nil && p.Price.LessThan(*f.PriceMin) {
			continue
		}
		if f.RatingMin != nil && p.Rating < *f.RatingMin {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case domain.SortCheapest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case domain.SortExpensive:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	}
	return out
}

// ResolveByName returns the first product whose name contains the query as a
// case-insensitive substring, in catalog order.
func (c *Catalog) ResolveByName(query string) (domain.Product, bool) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return domain.Product{}, false
	}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return p, true
		}
	}
	return domain.Product{}, false
}

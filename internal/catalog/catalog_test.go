package catalog

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/PRATHVI9607/PaymentAI/internal/domain"
)

func testCatalog() *Catalog {
	return New([]domain.Product{
		{ID: "p1", Name: "Wireless Mouse", Price: decimal.RequireFromString("29.99"), Rating: 4.5, Store: "TechPro"},
		{ID: "p2", Name: "Gaming Mouse", Price: decimal.RequireFromString("59.99"), Rating: 4.8, Store: "GameHub"},
		{ID: "p3", Name: "Budget Mouse", Price: decimal.RequireFromString("12.50"), Rating: 3.9, Store: "ValueMart"},
		{ID: "p4", Name: "Mechanical Keyboard", Price: decimal.RequireFromString("89.99"), Rating: 4.6, Store: "TechPro"},
	})
}

func money(t *testing.T, s string) *domain.Money {
	t.Helper()
	m := decimal.RequireFromString(s)
	return &m
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func assertIDs(t *testing.T, got []domain.Product, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestSearchBySubstringIsCaseInsensitive(t *testing.T) {
	cat := testCatalog()
	assertIDs(t, cat.Search(Filter{Item: "MOUSE"}), "p1", "p2", "p3")
}

func TestSearchPriceBounds(t *testing.T) {
	cat := testCatalog()

	assertIDs(t, cat.Search(Filter{Item: "mouse", PriceMax: money(t, "30")}), "p1", "p3")
	assertIDs(t, cat.Search(Filter{Item: "mouse", PriceMin: money(t, "29.99")}), "p1", "p2")

	// Bounds are inclusive.
	assertIDs(t, cat.Search(Filter{PriceMin: money(t, "89.99"), PriceMax: money(t, "89.99")}), "p4")
}

func TestSearchRatingBound(t *testing.T) {
	cat := testCatalog()
	rating := 4.5
	assertIDs(t, cat.Search(Filter{Item: "mouse", RatingMin: &rating}), "p1", "p2")
}

func TestSearchSortOrders(t *testing.T) {
	cat := testCatalog()

	assertIDs(t, cat.Search(Filter{Item: "mouse", Sort: domain.SortCheapest}), "p3", "p1", "p2")
	assertIDs(t, cat.Search(Filter{Item: "mouse", Sort: domain.SortExpensive}), "p2", "p1", "p3")
}

func TestSearchUnfilteredKeepsCatalogOrder(t *testing.T) {
	cat := testCatalog()
	assertIDs(t, cat.Search(Filter{}), "p1", "p2", "p3", "p4")
}

func TestSearchNoMatches(t *testing.T) {
	cat := testCatalog()
	if got := cat.Search(Filter{Item: "yacht"}); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestResolveByNamePicksFirstInCatalogOrder(t *testing.T) {
	cat := testCatalog()

	p, ok := cat.ResolveByName("mouse")
	if !ok {
		t.Fatal("expected a match")
	}
	// p3 is cheaper but p1 comes first in catalog order.
	if p.ID != "p1" {
		t.Fatalf("expected p1, got %s", p.ID)
	}
}

func TestResolveByNameMisses(t *testing.T) {
	cat := testCatalog()

	if _, ok := cat.ResolveByName("yacht"); ok {
		t.Fatal("expected no match for unknown product")
	}
	if _, ok := cat.ResolveByName("   "); ok {
		t.Fatal("expected no match for blank query")
	}
}

func TestListCopiesProducts(t *testing.T) {
	cat := testCatalog()
	list := cat.List()
	list[0].Name = "mutated"

	if got := cat.List()[0].Name; got != "Wireless Mouse" {
		t.Fatalf("catalog mutated through List result: %s", got)
	}
}

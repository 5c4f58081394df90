package view

import (
	"strings"

	"github.com/atinyakov/storeviewer/internal/models"
)

// Filter is the transient filter state, derived from the current values of
// the search input and the category selector. Never persisted.
type Filter struct {
	SearchTerm string
	Category   string
}

// MatchesFilter reports whether a product stays visible under the given
// search term and category. The term matches name or description
// case-insensitively; the category must match exactly, with "" meaning all.
func MatchesFilter(p models.Product, term, category string) bool {
	term = strings.ToLower(term)
	matchesSearch := strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
	matchesCategory := category == "" || p.Category == category
	return matchesSearch && matchesCategory
}

// Apply returns the products visible under f, preserving order.
func Apply(products []models.Product, f Filter) []models.Product {
	visible := make([]models.Product, 0, len(products))
	for _, p := range products {
		if MatchesFilter(p, f.SearchTerm, f.Category) {
			visible = append(visible, p)
		}
	}
	return visible
}

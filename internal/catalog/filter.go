package catalog

import "strings"

// Filter keeps the products whose title contains search (case-insensitive)
// and whose price lies in r, preserving their relative order. It does not
// check that r.Min <= r.Max.
func Filter(items []Product, search string, r PriceRange) []Product {
	needle := strings.ToLower(search)

	out := make([]Product, 0, len(items))
	for _, p := range items {
		if !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		if !r.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}
	return out
}

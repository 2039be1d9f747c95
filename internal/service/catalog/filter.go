package catalog

import (
	"slices"
	"strings"

	"eventoria/internal/domain"
	"eventoria/internal/pkg/textutil"
)

// Apply filters and orders listings for the public browser. It never
// mutates the input slice.
func Apply(listings []domain.Listing, f domain.ListingFilter) []domain.Listing {
	query := textutil.Fold(strings.TrimSpace(f.Query))
	city := textutil.Fold(strings.TrimSpace(f.City))

	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if !l.IsActive() {
			continue
		}
		if query != "" && !matchesQuery(l, query) {
			continue
		}
		if city != "" && !matchesCity(l, city) {
			continue
		}
		if f.CategoryID != "" && l.CategoryID != f.CategoryID {
			continue
		}
		if f.Subcategory != "" && !slices.Contains(l.Subcategories, f.Subcategory) {
			continue
		}
		if f.Tag != "" && !slices.Contains(l.Tags, f.Tag) {
			continue
		}
		if f.PriceMin != nil && l.Price.Amount < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && l.Price.Amount > *f.PriceMax {
			continue
		}
		if f.MinRating != nil && l.Rating < *f.MinRating {
			continue
		}
		out = append(out, l)
	}

	sortListings(out, f.Sort)
	return out
}

func matchesQuery(l domain.Listing, folded string) bool {
	return strings.Contains(textutil.Fold(l.Name), folded) ||
		strings.Contains(textutil.Fold(l.Description), folded) ||
		strings.Contains(textutil.Fold(l.VendorName), folded)
}

func matchesCity(l domain.Listing, folded string) bool {
	for _, loc := range l.Locations {
		if strings.Contains(textutil.Fold(loc), folded) {
			return true
		}
	}
	return false
}

func sortListings(listings []domain.Listing, sort domain.ListingSort) {
	newest := func(a, b domain.Listing) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	}

	var cmp func(a, b domain.Listing) int
	switch sort {
	case domain.SortPriceAsc:
		cmp = func(a, b domain.Listing) int { return compareFloat(a.Price.Amount, b.Price.Amount) }
	case domain.SortPriceDesc:
		cmp = func(a, b domain.Listing) int { return compareFloat(b.Price.Amount, a.Price.Amount) }
	case domain.SortRatingAsc:
		cmp = func(a, b domain.Listing) int { return compareFloat(a.Rating, b.Rating) }
	case domain.SortRatingDesc:
		cmp = func(a, b domain.Listing) int { return compareFloat(b.Rating, a.Rating) }
	case domain.SortNameAsc, domain.SortNameDesc:
		coll := textutil.NewCollator()
		desc := sort == domain.SortNameDesc
		cmp = func(a, b domain.Listing) int {
			if desc {
				return coll.Compare(b.Name, a.Name)
			}
			return coll.Compare(a.Name, b.Name)
		}
	default:
		cmp = newest
	}

	slices.SortStableFunc(listings, func(a, b domain.Listing) int {
		if c := cmp(a, b); c != 0 {
			return c
		}
		return newest(a, b)
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

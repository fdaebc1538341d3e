package catalog

import (
	"sort"
	"strings"

	"artmarket/internal/domain"
)

// Sort modes supported by the catalog
const (
	SortFeatured = "featured"
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortPopular  = "popular"
)

// Criteria holds the user-chosen filter/search/sort parameters for one
// catalog query. Zero value means "everything, featured first".
type Criteria struct {
	Category string `json:"category"`
	Search   string `json:"search"`
	Sort     string `json:"sort"`
}

// FilterByCategory returns the artworks belonging to categoryID,
// preserving input order. The sentinel "all" (or an empty id) returns the
// input unchanged. An unknown category id yields an empty result rather
// than an error, so stale UI state degrades to "no results".
func FilterByCategory(items []domain.Artwork, categoryID string) []domain.Artwork {
	if categoryID == "" || categoryID == domain.CategoryAll {
		return items
	}

	filtered := []domain.Artwork{}
	for _, item := range items {
		if item.CategoryID == categoryID {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// FilterBySearch returns the artworks matching the free-text query,
// preserving input order. Matching is case-insensitive substring
// containment against title, artist name, description, and tags. A blank
// or whitespace-only query returns the input unchanged.
func FilterBySearch(items []domain.Artwork, query string) []domain.Artwork {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	query = strings.ToLower(query)

	filtered := []domain.Artwork{}
	for _, item := range items {
		if matchesQuery(item, query) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func matchesQuery(item domain.Artwork, lowered string) bool {
	if strings.Contains(strings.ToLower(item.Title), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(item.ArtistName), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), lowered) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), lowered) {
			return true
		}
	}
	return false
}

// SortItems returns a sorted copy of items. The input slice is never
// mutated. All sorts are stable: items with equal keys keep their
// relative input order, which matters for "featured" where the key only
// has two buckets. An unknown mode falls back to SortFeatured.
func SortItems(items []domain.Artwork, mode string) []domain.Artwork {
	sorted := make([]domain.Artwork, len(items))
	copy(sorted, items)

	switch mode {
	case SortNewest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RecencyKey().After(sorted[j].RecencyKey())
		})
	case SortOldest:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RecencyKey().Before(sorted[j].RecencyKey())
		})
	case SortPopular:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Views > sorted[j].Views
		})
	default: // SortFeatured and anything unrecognized
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Featured && !sorted[j].Featured
		})
	}

	return sorted
}

// Query composes the three derivation steps in the fixed order
// category filter -> search filter -> sort. Search operates on the
// already category-restricted pool, and sort is always the final,
// display-determining step. Pure function of (items, criteria); safe to
// call repeatedly with the same inputs.
func Query(items []domain.Artwork, criteria Criteria) []domain.Artwork {
	filtered := FilterByCategory(items, criteria.Category)
	filtered = FilterBySearch(filtered, criteria.Search)
	return SortItems(filtered, criteria.Sort)
}

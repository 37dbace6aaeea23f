package domain

// CategoryAll is the category filter sentinel meaning "no category filter".
const CategoryAll = "ALL"

type SortMode string

const (
	SortFeatured  SortMode = "featured"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortNameAsc   SortMode = "name_asc"
)

// FilterQuery describes one display-list evaluation. It owns no state
// beyond the current evaluation and is never persisted.
type FilterQuery struct {
	Text     string
	Category string
	Sort     SortMode
}

// ParseSortMode maps v to a SortMode, falling back to SortFeatured
// for empty or unrecognized input.
func ParseSortMode(v string) SortMode {
	switch m := SortMode(v); m {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortFeatured:
		return m
	default:
		return SortFeatured
	}
}

package service

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/niksmo/storefront/internal/core/domain"
)

// browse derives a display list from the catalog: category filter,
// then text filter, then sort. The catalog itself is never mutated.
func browse(
	catalog domain.Catalog, q domain.FilterQuery, loc language.Tag,
) domain.Catalog {
	list := catalog

	if q.Category != "" && q.Category != domain.CategoryAll {
		list = filterProducts(list, func(p domain.Product) bool {
			return p.Category == q.Category
		})
	}

	if text := normalize(q.Text); text != "" {
		list = filterProducts(list, func(p domain.Product) bool {
			return strings.Contains(searchBlob(p), text)
		})
	}

	return sortProducts(list, q.Sort, loc)
}

// categories lists the distinct non-empty categories in collation order.
func categories(catalog domain.Catalog, loc language.Tag) []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, p := range catalog {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		cats = append(cats, p.Category)
	}

	col := collate.New(loc)
	sort.Slice(cats, func(i, j int) bool {
		return col.CompareString(cats[i], cats[j]) < 0
	})
	return cats
}

func filterProducts(
	list domain.Catalog, keep func(domain.Product) bool,
) domain.Catalog {
	out := make(domain.Catalog, 0, len(list))
	for _, p := range list {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts reorders a copy of list. Every mode is stable for equal
// keys; the featured mode partitions featured products first and ties
// on name within each partition.
func sortProducts(
	list domain.Catalog, mode domain.SortMode, loc language.Tag,
) domain.Catalog {
	out := make(domain.Catalog, len(list))
	copy(out, list)

	switch mode {
	case domain.SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	case domain.SortNameAsc:
		col := collate.New(loc)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	default:
		col := collate.New(loc)
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Featured != out[j].Featured {
				return out[i].Featured
			}
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func searchBlob(p domain.Product) string {
	return normalize(strings.Join(
		[]string{p.SKU, p.Name, p.Category, p.Short, p.Specs}, " ",
	))
}

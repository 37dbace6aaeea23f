package gviz

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

var productSchema = Schema{
	"sku":      "sku",
	"name":     "name",
	"category": "category",
	"price":    "price",
	"stock":    "stock",
	"image":    "image",
	"short":    "short",
	"specs":    "specs",
	"featured": "featured",
}

// bindProducts applies the product coercion rules to parsed records.
// Rows lacking a non-empty sku or name are dropped, as is any row
// repeating an already-seen SKU (first row wins).
func (l Loader) bindProducts(recs []Record) domain.Catalog {
	const op = "Loader.bindProducts"
	log := slog.With("op", op)

	seen := make(map[string]struct{}, len(recs))
	catalog := make(domain.Catalog, 0, len(recs))
	for i, rec := range recs {
		sku := strings.TrimSpace(asString(rec["sku"]))
		name := strings.TrimSpace(asString(rec["name"]))
		if sku == "" || name == "" {
			continue
		}
		if _, dup := seen[sku]; dup {
			log.Debug("dropped row repeating sku", "sku", sku, "row", i)
			continue
		}
		seen[sku] = struct{}{}

		category := strings.TrimSpace(asString(rec["category"]))
		if category == "" {
			category = l.cfg.FallbackCategory
		}
		image := strings.TrimSpace(asString(rec["image"]))
		if image == "" {
			image = l.cfg.PlaceholderImage
		}

		catalog = append(catalog, domain.Product{
			SKU:      sku,
			Name:     name,
			Category: category,
			Price:    asNumber(rec["price"]),
			Stock:    int(asNumber(rec["stock"])),
			Image:    image,
			Short:    strings.TrimSpace(asString(rec["short"])),
			Specs:    strings.TrimSpace(asString(rec["specs"])),
			Featured: domain.ParseTruthy(asString(rec["featured"])),
		})
	}
	return catalog
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// asNumber coerces a cell to a number; non-numeric values become 0.
func asNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

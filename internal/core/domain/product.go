package domain

import "strings"

type (
	Product struct {
		SKU      string
		Name     string
		Category string
		Price    float64
		Stock    int
		Image    string
		Short    string
		Specs    string
		Featured bool
	}

	// Catalog keeps products in source row order.
	Catalog []Product
)

func (p Product) InStock() bool {
	return p.Stock > 0
}

// ParseTruthy reports whether v is one of the accepted truthy
// tokens: "true", "yes", "1", "y" (case-insensitive, trimmed).
func ParseTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1", "y":
		return true
	}
	return false
}

package domain

import "errors"

var (
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrProductNotFound    = errors.New("product not found")
)

type (
	// CartLine is a cart entry joined with its catalog product.
	CartLine struct {
		Product   Product
		Quantity  int
		LineTotal float64
	}

	CartSummary struct {
		Lines        []CartLine
		Total        float64
		Count        int
		CheckoutLink string
	}
)

package httphandler

import "github.com/niksmo/storefront/internal/core/domain"

type (
	Product struct {
		SKU        string  `json:"sku"`
		Name       string  `json:"name"`
		Category   string  `json:"category"`
		Price      float64 `json:"price"`
		Stock      int     `json:"stock"`
		StockState string  `json:"stock_state"`
		Image      string  `json:"image"`
		Short      string  `json:"short"`
		Specs      string  `json:"specs"`
		Featured   bool    `json:"featured"`
	}

	CartLine struct {
		Product   Product `json:"product"`
		Quantity  int     `json:"quantity"`
		LineTotal float64 `json:"line_total"`
	}

	CatalogResponse struct {
		Products []Product `json:"products"`
	}

	CategoriesResponse struct {
		Categories []string `json:"categories"`
	}

	ItemResponse struct {
		Product    Product `json:"product"`
		InquiryURL string  `json:"inquiry_url"`
	}

	CartResponse struct {
		Items       []CartLine `json:"items"`
		Total       float64    `json:"total"`
		Count       int        `json:"count"`
		CheckoutURL string     `json:"checkout_url"`
	}

	ReloadResponse struct {
		Products int `json:"products"`
	}

	AddItemRequest struct {
		SKU string `json:"sku"`
		Qty *int   `json:"qty"` // omitted means 1
	}

	SetQuantityRequest struct {
		Qty int `json:"qty"`
	}
)

const (
	stockStateOut  = "out"
	stockStateLow  = "low"
	stockStateGood = "good"
)

// toWire converts a domain product, deriving the advisory stock badge
// from the configured good-stock threshold.
func toWire(p domain.Product, minStockGood int) Product {
	state := stockStateGood
	switch {
	case p.Stock <= 0:
		state = stockStateOut
	case p.Stock < minStockGood:
		state = stockStateLow
	}

	return Product{
		SKU:        p.SKU,
		Name:       p.Name,
		Category:   p.Category,
		Price:      p.Price,
		Stock:      p.Stock,
		StockState: state,
		Image:      p.Image,
		Short:      p.Short,
		Specs:      p.Specs,
		Featured:   p.Featured,
	}
}

func toWireList(list domain.Catalog, minStockGood int) []Product {
	ps := make([]Product, len(list))
	for i, p := range list {
		ps[i] = toWire(p, minStockGood)
	}
	return ps
}

func toWireLines(lines []domain.CartLine, minStockGood int) []CartLine {
	ls := make([]CartLine, len(lines))
	for i, l := range lines {
		ls[i] = CartLine{
			Product:   toWire(l.Product, minStockGood),
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal,
		}
	}
	return ls
}

package port

import (
	"context"

	"github.com/niksmo/storefront/internal/core/domain"
)

type CatalogLoader interface {
	Load(context.Context) (domain.Catalog, error)
}

// CartVault is the persisted cart slot: one mapping from SKU to
// positive quantity, rewritten whole on every mutation.
type CartVault interface {
	Load() map[string]int
	Store(map[string]int) error
}

// OrderComposer turns derived cart lines and a grand total into
// human-readable order text.
type OrderComposer interface {
	Order(lines []domain.CartLine, total float64) string
}

// MessageComposer supplies every outbound message the core hands
// to visitors, plus the deep link wrapping the text.
type MessageComposer interface {
	OrderComposer
	ProductInquiry(domain.Product) string
	GeneralInquiry() string
	Link(text string) string
}

type CatalogBrowser interface {
	Browse(domain.FilterQuery) (domain.Catalog, error)
	Categories() ([]string, error)
	Item(sku string) (domain.Product, string, error)
}

type CatalogReloader interface {
	Reload(context.Context) (int, error)
}

type CartKeeper interface {
	AddToCart(sku string, qty int)
	SetQuantity(sku string, qty int)
	ClearCart()
	CartSummary() domain.CartSummary
}

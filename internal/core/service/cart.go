package service

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// CartStore owns the persisted SKU→quantity mapping. No entry ever
// holds a quantity below one; every mutation synchronously rewrites
// the whole slot through the vault.
type CartStore struct {
	mu    sync.Mutex
	vault port.CartVault
	items map[string]int
	order []string // insertion order of live SKUs
}

// NewCartStore rehydrates the store from the vault. The persisted
// object cannot carry key order, so rehydrated SKUs start in
// lexicographic order; SKUs added later keep insertion order.
func NewCartStore(vault port.CartVault) *CartStore {
	items := vault.Load()
	if items == nil {
		items = map[string]int{}
	}
	return &CartStore{
		vault: vault,
		items: items,
		order: slices.Sorted(maps.Keys(items)),
	}
}

// Add increments the quantity for sku by qty, which may be negative.
// A resulting quantity of zero or below removes the entry.
func (c *CartStore) Add(sku string, qty int) {
	const op = "CartStore.Add"
	c.mu.Lock()
	defer c.mu.Unlock()

	c.put(sku, c.items[sku]+qty)
	c.persist(op)
}

// Set overwrites the quantity for sku; qty below one removes the entry.
func (c *CartStore) Set(sku string, qty int) {
	const op = "CartStore.Set"
	c.mu.Lock()
	defer c.mu.Unlock()

	c.put(sku, qty)
	c.persist(op)
}

func (c *CartStore) Clear() {
	const op = "CartStore.Clear"
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = map[string]int{}
	c.order = nil
	c.persist(op)
}

// Count returns the total item count, summed over all entries.
func (c *CartStore) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int
	for _, qty := range c.items {
		n += qty
	}
	return n
}

// Lines joins the cart with the catalog in entry order. SKUs absent
// from the catalog are skipped: the product may have been removed
// from the source since the quantity was stored.
func (c *CartStore) Lines(catalog domain.Catalog) []domain.CartLine {
	index := make(map[string]domain.Product, len(catalog))
	for _, p := range catalog {
		if _, ok := index[p.SKU]; !ok {
			index[p.SKU] = p
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]domain.CartLine, 0, len(c.order))
	for _, sku := range c.order {
		p, ok := index[sku]
		if !ok {
			continue
		}
		qty := c.items[sku]
		lines = append(lines, domain.CartLine{
			Product:   p,
			Quantity:  qty,
			LineTotal: float64(qty) * p.Price,
		})
	}
	return lines
}

// Total sums the line totals of every derivable cart line.
func (c *CartStore) Total(catalog domain.Catalog) float64 {
	return lineSum(c.Lines(catalog))
}

// OrderSummary renders the order text for the current cart through
// the caller-supplied composer.
func (c *CartStore) OrderSummary(
	catalog domain.Catalog, composer port.OrderComposer,
) string {
	lines := c.Lines(catalog)
	return composer.Order(lines, lineSum(lines))
}

// put applies the quantity floor. Callers hold c.mu.
func (c *CartStore) put(sku string, qty int) {
	_, exists := c.items[sku]
	if qty <= 0 {
		if exists {
			delete(c.items, sku)
			c.order = slices.DeleteFunc(c.order, func(s string) bool {
				return s == sku
			})
		}
		return
	}
	if !exists {
		c.order = append(c.order, sku)
	}
	c.items[sku] = qty
}

// persist rewrites the vault slot. Persistence failure is logged, not
// surfaced: the in-memory cart stays usable either way.
func (c *CartStore) persist(op string) {
	if err := c.vault.Store(c.items); err != nil {
		slog.Error("failed to persist cart", "op", op, "err", err)
	}
}

func lineSum(lines []domain.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.LineTotal
	}
	return total
}

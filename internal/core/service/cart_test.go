package service_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/adapter/cartfile"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
)

type memVault struct {
	items  map[string]int
	stores int
}

func (v *memVault) Load() map[string]int {
	cp := make(map[string]int, len(v.items))
	for sku, qty := range v.items {
		cp[sku] = qty
	}
	return cp
}

func (v *memVault) Store(items map[string]int) error {
	cp := make(map[string]int, len(items))
	for sku, qty := range items {
		cp[sku] = qty
	}
	v.items = cp
	v.stores++
	return nil
}

type stubComposer struct{}

func (stubComposer) Order(lines []domain.CartLine, total float64) string {
	return fmt.Sprintf("order: %d lines, total %.0f", len(lines), total)
}

func cartCatalog() domain.Catalog {
	return domain.Catalog{
		{SKU: "A1", Name: "Cable", Price: 10000},
		{SKU: "A2", Name: "Adapter", Price: 5000},
	}
}

func TestCartStore(t *testing.T) {
	t.Run("AddAccumulates", func(t *testing.T) {
		cart := service.NewCartStore(&memVault{})

		cart.Add("A1", 1)
		cart.Add("A1", 2)
		cart.Add("A2", 1)

		assert.Equal(t, 4, cart.Count())
	})

	t.Run("NegativeAddOnEmptyCartStoresNothing", func(t *testing.T) {
		vault := &memVault{}
		cart := service.NewCartStore(vault)

		cart.Add("X", -5)

		assert.Zero(t, cart.Count())
		assert.Empty(t, vault.items)
	})

	t.Run("AddBelowZeroRemovesEntry", func(t *testing.T) {
		cart := service.NewCartStore(&memVault{})

		cart.Add("A1", 2)
		cart.Add("A1", -3)

		assert.Zero(t, cart.Count())
		assert.Empty(t, cart.Lines(cartCatalog()))
	})

	t.Run("SetZeroRemovesEntry", func(t *testing.T) {
		vault := &memVault{}
		cart := service.NewCartStore(vault)

		cart.Add("X", 3)
		cart.Set("X", 0)

		assert.Zero(t, cart.Count())
		assert.Empty(t, vault.items)
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		cart := service.NewCartStore(&memVault{})

		cart.Add("A1", 1)
		cart.Set("A1", 7)

		assert.Equal(t, 7, cart.Count())
	})

	t.Run("ClearEmptiesMapping", func(t *testing.T) {
		vault := &memVault{}
		cart := service.NewCartStore(vault)

		cart.Add("A1", 2)
		cart.Add("A2", 3)
		cart.Clear()

		assert.Zero(t, cart.Count())
		assert.Empty(t, vault.items)
	})

	t.Run("EveryMutationPersists", func(t *testing.T) {
		vault := &memVault{}
		cart := service.NewCartStore(vault)

		cart.Add("A1", 1)
		cart.Set("A1", 2)
		cart.Clear()

		assert.Equal(t, 3, vault.stores)
	})
}

func TestCartStoreDerivations(t *testing.T) {
	t.Run("LinesKeepInsertionOrder", func(t *testing.T) {
		cart := service.NewCartStore(&memVault{})
		cart.Add("A2", 1)
		cart.Add("A1", 2)

		lines := cart.Lines(cartCatalog())
		require.Len(t, lines, 2)
		assert.Equal(t, "A2", lines[0].Product.SKU)
		assert.Equal(t, float64(5000), lines[0].LineTotal)
		assert.Equal(t, "A1", lines[1].Product.SKU)
		assert.Equal(t, float64(20000), lines[1].LineTotal)
	})

	t.Run("UnknownSKUIsSkipped", func(t *testing.T) {
		cart := service.NewCartStore(&memVault{})
		cart.Add("GONE", 2)
		cart.Add("A1", 1)

		lines := cart.Lines(cartCatalog())
		require.Len(t, lines, 1)
		assert.Equal(t, "A1", lines[0].Product.SKU)
		assert.Equal(t, float64(10000), cart.Total(cartCatalog()))
	})

	t.Run("TotalSumsLineTotals", func(t *testing.T) {
		cart := service.NewCartStore(&memVault{})
		cart.Add("A1", 2)
		cart.Add("A2", 1)

		assert.Equal(t, float64(25000), cart.Total(cartCatalog()))
	})

	t.Run("OrderSummaryUsesInjectedComposer", func(t *testing.T) {
		cart := service.NewCartStore(&memVault{})
		cart.Add("A1", 2)

		got := cart.OrderSummary(cartCatalog(), stubComposer{})
		assert.Equal(t, "order: 1 lines, total 20000", got)
	})
}

func TestCartStorePersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	vault := cartfile.New(path)

	cart := service.NewCartStore(vault)
	cart.Add("X", 2)

	restored := service.NewCartStore(cartfile.New(path))
	assert.Equal(t, 2, restored.Count())

	lines := restored.Lines(domain.Catalog{{SKU: "X", Name: "Thing", Price: 100}})
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogBrowser = (*Service)(nil)
var _ port.CatalogReloader = (*Service)(nil)
var _ port.CartKeeper = (*Service)(nil)

// Service owns the current catalog and the cart, and derives every
// read model the rendering surface consumes.
type Service struct {
	loader   port.CatalogLoader
	composer port.MessageComposer
	cart     *CartStore
	locale   language.Tag

	mu         sync.RWMutex
	catalog    domain.Catalog
	loaded     bool
	lastErr    error
	nextGen    uint64
	appliedGen uint64
}

func New(
	loader port.CatalogLoader,
	vault port.CartVault,
	composer port.MessageComposer,
	locale language.Tag,
) *Service {
	return &Service{
		loader:   loader,
		composer: composer,
		cart:     NewCartStore(vault),
		locale:   locale,
	}
}

// Reload invokes the loader and applies the outcome under a
// generation guard: a load that finishes after a later-started load
// has already applied is discarded, so a stale response can never
// overwrite a newer catalog.
func (s *Service) Reload(ctx context.Context) (int, error) {
	const op = "Service.Reload"
	log := slog.With("op", op)

	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	s.mu.Unlock()

	catalog, err := s.loader.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen <= s.appliedGen {
		log.Debug("discarded stale load", "generation", gen)
		return len(s.catalog), nil
	}
	s.appliedGen = gen

	if err != nil {
		s.lastErr = err
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.catalog = catalog
	s.loaded = true
	s.lastErr = nil
	log.Info("catalog applied", "products", len(catalog))
	return len(catalog), nil
}

// Browse derives the display list for q from the current catalog.
func (s *Service) Browse(q domain.FilterQuery) (domain.Catalog, error) {
	const op = "Service.Browse"
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return browse(s.catalog, q, s.locale), nil
}

func (s *Service) Categories() ([]string, error) {
	const op = "Service.Categories"
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories(s.catalog, s.locale), nil
}

// Item returns the product for sku together with its pre-filled
// inquiry link.
func (s *Service) Item(sku string) (domain.Product, string, error) {
	const op = "Service.Item"
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.availableLocked(); err != nil {
		return domain.Product{}, "", fmt.Errorf("%s: %w", op, err)
	}
	for _, p := range s.catalog {
		if p.SKU == sku {
			link := s.composer.Link(s.composer.ProductInquiry(p))
			return p, link, nil
		}
	}
	return domain.Product{}, "", fmt.Errorf(
		"%s: %q: %w", op, sku, domain.ErrProductNotFound,
	)
}

func (s *Service) AddToCart(sku string, qty int) {
	s.cart.Add(sku, qty)
}

func (s *Service) SetQuantity(sku string, qty int) {
	s.cart.Set(sku, qty)
}

func (s *Service) ClearCart() {
	s.cart.Clear()
}

// CartSummary joins the cart against the current catalog. An empty
// cart yields a general inquiry checkout link instead of an order.
func (s *Service) CartSummary() domain.CartSummary {
	s.mu.RLock()
	catalog := s.catalog
	s.mu.RUnlock()

	lines := s.cart.Lines(catalog)
	total := lineSum(lines)

	var text string
	if len(lines) == 0 {
		text = s.composer.GeneralInquiry()
	} else {
		text = s.composer.Order(lines, total)
	}

	return domain.CartSummary{
		Lines:        lines,
		Total:        total,
		Count:        s.cart.Count(),
		CheckoutLink: s.composer.Link(text),
	}
}

// availableLocked reports the persistent load-failure state: reads
// stay available with an empty catalog until the first load attempt
// fails, and recover once any reload succeeds. Callers hold s.mu.
func (s *Service) availableLocked() error {
	if !s.loaded && s.lastErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, s.lastErr)
	}
	return nil
}

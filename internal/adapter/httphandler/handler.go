package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET  /v1/catalog?search=&category=&sort=  display list (503 while unavailable)
// GET  /v1/catalog/categories               category options
// GET  /v1/catalog/items/{sku}              product detail + inquiry link
// POST /v1/catalog/reload                   manual retry of the source fetch

type CatalogHandler struct {
	browser      port.CatalogBrowser
	reloader     port.CatalogReloader
	minStockGood int
}

func RegisterCatalog(
	mux *http.ServeMux,
	browser port.CatalogBrowser,
	reloader port.CatalogReloader,
	minStockGood int,
) {
	h := CatalogHandler{browser, reloader, minStockGood}
	mux.HandleFunc("GET /v1/catalog", h.GetCatalog)
	mux.HandleFunc("GET /v1/catalog/categories", h.GetCategories)
	mux.HandleFunc("GET /v1/catalog/items/{sku}", h.GetItem)
	mux.HandleFunc("POST /v1/catalog/reload", h.PostReload)
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCatalog"
	log := slog.With("op", op)

	params := r.URL.Query()
	q := domain.FilterQuery{
		Text:     params.Get("search"),
		Category: params.Get("category"),
		Sort:     domain.ParseSortMode(params.Get("sort")),
	}

	list, err := h.browser.Browse(q)
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		log.Warn("catalog unavailable", "err", err)
		return
	}

	writeJSON(w, log, CatalogResponse{toWireList(list, h.minStockGood)})
}

func (h CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetCategories"
	log := slog.With("op", op)

	cats, err := h.browser.Categories()
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		log.Warn("catalog unavailable", "err", err)
		return
	}

	writeJSON(w, log, CategoriesResponse{cats})
}

func (h CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetItem"
	log := slog.With("op", op)

	sku := r.PathValue("sku")
	p, inquiryURL, err := h.browser.Item(sku)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, "unknown sku", http.StatusNotFound)
			return
		}
		http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
		log.Warn("catalog unavailable", "err", err)
		return
	}

	writeJSON(w, log, ItemResponse{toWire(p, h.minStockGood), inquiryURL})
}

func (h CatalogHandler) PostReload(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.PostReload"
	log := slog.With("op", op)

	n, err := h.reloader.Reload(r.Context())
	if err != nil {
		http.Error(w, "failed to load catalog", http.StatusBadGateway)
		log.Error("failed to reload catalog", "err", err)
		return
	}

	writeJSON(w, log, ReloadResponse{n})
	log.Info("catalog reloaded", "products", n)
}

// GET    /v1/cart              line items, total, count, checkout link
// POST   /v1/cart/items        add quantity (default 1, may be negative)
// PUT    /v1/cart/items/{sku}  set absolute quantity
// DELETE /v1/cart              clear

type CartHandler struct {
	keeper       port.CartKeeper
	minStockGood int
}

func RegisterCart(mux *http.ServeMux, keeper port.CartKeeper, minStockGood int) {
	h := CartHandler{keeper, minStockGood}
	mux.HandleFunc("GET /v1/cart", h.GetCart)
	mux.HandleFunc("POST /v1/cart/items", h.PostItem)
	mux.HandleFunc("PUT /v1/cart/items/{sku}", h.PutItem)
	mux.HandleFunc("DELETE /v1/cart", h.DeleteCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.GetCart"
	log := slog.With("op", op)

	s := h.keeper.CartSummary()
	writeJSON(w, log, CartResponse{
		Items:       toWireLines(s.Lines, h.minStockGood),
		Total:       s.Total,
		Count:       s.Count,
		CheckoutURL: s.CheckoutLink,
	})
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}
	if strings.TrimSpace(req.SKU) == "" {
		http.Error(w, "sku is required", http.StatusBadRequest)
		return
	}

	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}
	h.keeper.AddToCart(req.SKU, qty)

	h.GetCart(w, r)
}

func (h CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PutItem"
	log := slog.With("op", op)

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	h.keeper.SetQuantity(r.PathValue("sku"), req.Qty)

	h.GetCart(w, r)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.keeper.ClearCart()
	h.GetCart(w, r)
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

// Package cartfile persists the cart slot as one JSON object mapping
// SKU to quantity, rewritten whole on every store.
package cartfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartVault = (*Vault)(nil)

type Vault struct {
	path string
}

func New(path string) Vault {
	return Vault{path}
}

// Load reads the persisted mapping. A missing, unreadable or
// malformed slot yields an empty mapping, never an error: a corrupt
// cart must not block the catalog.
func (v Vault) Load() map[string]int {
	const op = "Vault.Load"
	log := slog.With("op", op)

	data, err := os.ReadFile(v.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("unreadable cart slot, starting empty", "err", err)
		}
		return map[string]int{}
	}

	var items map[string]int
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		log.Warn("malformed cart slot, starting empty", "err", err)
		return map[string]int{}
	}

	// an older writer may have left non-positive quantities behind
	for sku, qty := range items {
		if qty <= 0 {
			delete(items, sku)
		}
	}
	return items
}

// Store rewrites the whole slot. The write goes through a sibling
// temp file and a rename so a crash never leaves a torn slot.
func (v Vault) Store(items map[string]int) error {
	const op = "Vault.Store"

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if dir := filepath.Dir(v.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	tmp := v.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp, v.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

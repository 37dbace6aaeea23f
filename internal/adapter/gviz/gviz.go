// Package gviz loads the product catalog from a published Google Sheets
// worksheet through the gviz query endpoint.
package gviz

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogLoader = (*Loader)(nil)

var (
	// ErrTransport marks fetches that never produced a usable response.
	ErrTransport = errors.New("catalog source unreachable")

	// ErrMalformedPayload marks responses whose body could not be
	// unwrapped or decoded as a table.
	ErrMalformedPayload = errors.New("malformed catalog payload")

	errMissingTable = errors.New("missing table columns")
)

const DefaultBaseURL = "https://docs.google.com/spreadsheets"

type LoaderConfig struct {
	BaseURL          string // empty means DefaultBaseURL
	SheetID          string
	SheetName        string
	PlaceholderImage string
	FallbackCategory string
}

type Loader struct {
	client *http.Client
	cfg    LoaderConfig
}

func NewLoader(cfg LoaderConfig) Loader {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return Loader{client: &http.Client{}, cfg: cfg}
}

// Load performs a single fetch of the published worksheet and returns
// the validated catalog. A well-formed table with zero valid rows
// yields an empty catalog and no error. Failures are reported as
// ErrTransport or ErrMalformedPayload; Load never retries.
func (l Loader) Load(ctx context.Context) (domain.Catalog, error) {
	const op = "Loader.Load"
	log := slog.With("op", op)

	body, err := l.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	table, err := unwrap(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	catalog := l.bindProducts(ParseRecords(table, productSchema))
	log.Debug("catalog fetched", "rows", len(table.Rows), "products", len(catalog))
	return catalog, nil
}

func (l Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, l.queryURL(), nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	res, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrTransport, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return body, nil
}

func (l Loader) queryURL() string {
	return fmt.Sprintf(
		"%s/d/%s/gviz/tq?tqx=out:json&sheet=%s",
		l.cfg.BaseURL, l.cfg.SheetID, url.QueryEscape(l.cfg.SheetName),
	)
}

// unwrap strips the function-call envelope surrounding the JSON table:
// everything before the first '{' and after the last '}' is discarded.
func unwrap(body []byte) (Table, error) {
	start := bytes.IndexByte(body, '{')
	end := bytes.LastIndexByte(body, '}')
	if start < 0 || end < start {
		return Table{}, fmt.Errorf("%w: no object in envelope", ErrMalformedPayload)
	}

	table, err := decodeTable(body[start : end+1])
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return table, nil
}

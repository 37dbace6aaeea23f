// Package whatsapp composes wa.me deep links with pre-filled order
// and inquiry texts.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.MessageComposer = (*Composer)(nil)

type ComposerConfig struct {
	StoreName string
	Number    string // international format without leading plus
	Locale    string // BCP 47, e.g. "id"
	Currency  string // ISO 4217, e.g. "IDR"
}

type Composer struct {
	storeName string
	number    string
	printer   *message.Printer
	unit      currency.Unit
}

func NewComposer(cfg ComposerConfig) (Composer, error) {
	const op = "NewComposer"

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return Composer{}, fmt.Errorf("%s: locale %q: %w", op, cfg.Locale, err)
	}
	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		return Composer{}, fmt.Errorf("%s: currency %q: %w", op, cfg.Currency, err)
	}

	return Composer{
		storeName: cfg.StoreName,
		number:    cfg.Number,
		printer:   message.NewPrinter(tag),
		unit:      unit,
	}, nil
}

// Link wraps text in a wa.me deep link.
func (c Composer) Link(text string) string {
	q := url.Values{"text": {text}}
	return "https://wa.me/" + c.number + "?" + q.Encode()
}

// Order builds the checkout message: one line per cart item plus the
// estimated total.
func (c Composer) Order(lines []domain.CartLine, total float64) string {
	parts := []string{
		fmt.Sprintf("Halo %s, saya mau order:", c.storeName),
	}
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf(
			"- %s (SKU %s) x %d = %s",
			l.Product.Name, l.Product.SKU, l.Quantity, c.FormatPrice(l.LineTotal),
		))
	}
	parts = append(parts,
		fmt.Sprintf("Total estimasi: %s", c.FormatPrice(total)),
		"",
		"Mohon info stok final dan total pembayaran ya.",
	)
	return strings.Join(parts, "\n")
}

// ProductInquiry builds the single-product order message shown on the
// product detail view.
func (c Composer) ProductInquiry(p domain.Product) string {
	return strings.Join([]string{
		fmt.Sprintf("Halo %s, saya mau order:", c.storeName),
		fmt.Sprintf("- %s (SKU %s)", p.Name, p.SKU),
		"- Qty: 1",
		"Mohon info stok dan totalnya ya.",
	}, "\n")
}

// GeneralInquiry is the fallback message when the cart is empty.
func (c Composer) GeneralInquiry() string {
	return fmt.Sprintf("Halo %s, saya mau tanya produk dan stok.", c.storeName)
}

// FormatPrice renders n as localized currency text.
func (c Composer) FormatPrice(n float64) string {
	return c.printer.Sprint(currency.Symbol(c.unit.Amount(n)))
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"storefront/domain"
	"storefront/store"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const descriptionLimit = 100

var printer = message.NewPrinter(language.AmericanEnglish)

// formatPrice renders amount with the currency symbol and the currency's
// standard number of decimals, e.g. "$19.99".
func formatPrice(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return amount.StringFixed(2) + " " + code
	}
	scale, _ := currency.Standard.Rounding(unit)
	return printer.Sprint(currency.Symbol(unit)) + amount.StringFixed(int32(scale))
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

func stars(rating float64) string {
	n := int(math.Floor(rating))
	if n < 0 {
		n = 0
	}
	return strings.Repeat("★", n)
}

type catalogView struct {
	Query        string           `json:"query"`
	PriceSort    string           `json:"price_sort"`
	RatingSort   string           `json:"rating_sort"`
	ActiveSort   string           `json:"active_sort,omitempty"`
	VisibleCount int              `json:"visible_count"`
	Matches      int              `json:"matches"`
	Total        int              `json:"total"`
	HasMore      bool             `json:"has_more"`
	Products     []domain.Product `json:"products"`
}

func newCatalogView(c *store.Catalog) catalogView {
	v := catalogView{
		Query:        c.SearchQuery(),
		PriceSort:    c.PriceSort().String(),
		RatingSort:   c.RatingSort().String(),
		VisibleCount: c.VisibleCount(),
		Matches:      c.Matches(),
		Total:        c.Len(),
		HasMore:      c.HasMore(),
		Products:     c.Visible(),
	}
	if kind, ok := c.ActiveSort(); ok {
		v.ActiveSort = kind.String()
	}
	return v
}

func renderCatalog(w io.Writer, c *store.Catalog, output string) error {
	if output == "json" {
		return writeJSON(w, newCatalogView(c))
	}

	visible := c.Visible()
	fmt.Fprintf(w, "Showing %d of %d matches (%d products)\n", len(visible), c.Matches(), c.Len())
	if q := c.SearchQuery(); q != "" {
		fmt.Fprintf(w, "Search: %q\n", q)
	}
	if kind, ok := c.ActiveSort(); ok {
		fmt.Fprintf(w, "Sort: price=%s rating=%s (active: %s)\n", c.PriceSort(), c.RatingSort(), kind)
	}
	if len(visible) == 0 {
		fmt.Fprintln(w, "No products found.")
		return nil
	}
	for _, p := range visible {
		fmt.Fprintf(w, "%d | %s | %s | %s (%g)\n",
			p.ID, p.Title, formatPrice(p.Price, p.Currency), stars(p.Rating), p.Rating)
	}
	if c.HasMore() {
		fmt.Fprintln(w, "-- more products available --")
	}
	return nil
}

func renderCard(w io.Writer, p domain.Product) {
	fmt.Fprintf(w, "%s\n", p.Title)
	fmt.Fprintf(w, "%s  %s (%g)\n", formatPrice(p.Price, p.Currency), stars(p.Rating), p.Rating)
	if p.Description != "" {
		fmt.Fprintln(w, truncate(p.Description, descriptionLimit))
	}
	if p.Image != "" {
		fmt.Fprintf(w, "Image: %s\n", p.Image)
	}
}

type cartView struct {
	Items      []domain.Product `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	Currencies []string         `json:"currencies"`
}

func renderCartSummary(w io.Writer, c *store.Cart) {
	fmt.Fprintf(w, "Total Items: %d\n", c.TotalItems())
	fmt.Fprintf(w, "Total Price: %s\n", formatPrice(c.TotalPrice(), "USD"))
	if cur := c.Currencies(); len(cur) > 1 {
		fmt.Fprintf(w, "warning: total mixes currencies %s\n", strings.Join(cur, ", "))
	}
}

func renderCart(w io.Writer, c *store.Cart, output string) error {
	if output == "json" {
		return writeJSON(w, cartView{
			Items:      c.Items(),
			TotalItems: c.TotalItems(),
			TotalPrice: c.TotalPrice(),
			Currencies: c.Currencies(),
		})
	}
	for i, p := range c.Items() {
		fmt.Fprintf(w, "%d. %s | %s\n", i+1, p.Title, formatPrice(p.Price, p.Currency))
	}
	renderCartSummary(w, c)
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

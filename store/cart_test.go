package store

import (
	"testing"

	"storefront/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCart_Empty(t *testing.T) {
	c := NewCart()

	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.TotalPrice().Equal(decimal.Zero))
	assert.Empty(t, c.Items())
	assert.Empty(t, c.Currencies())
}

func TestCart_Additivity(t *testing.T) {
	c := NewCart()
	added := []domain.Product{
		product(1, "A", "19.99", 4),
		product(2, "B", "0.01", 4),
		product(1, "A", "19.99", 4),
		product(3, "C", "100", 1),
	}

	want := decimal.Zero
	for i, p := range added {
		c.AddItem(p)
		want = want.Add(p.Price)

		assert.Equal(t, i+1, c.TotalItems())
		assert.True(t, want.Equal(c.TotalPrice()), "after %d items: want %s got %s", i+1, want, c.TotalPrice())
	}

	// duplicates are separate entries in add order
	assert.Equal(t, []int{1, 2, 1, 3}, ids(c.Items()))
	assert.Equal(t, "139.99", c.TotalPrice().StringFixed(2))
}

func TestCart_ScenarioTotal(t *testing.T) {
	catalog := NewCatalog()
	catalog.Load([]domain.Product{
		product(1, "Cheap Product", "9.99", 3),
		product(2, "Expensive Product", "99.99", 5),
	})
	catalog.SetSort(domain.SortByPrice, domain.SortDescending)

	cart := NewCart()
	for _, p := range catalog.Visible() {
		cart.AddItem(p)
	}

	assert.Equal(t, 2, cart.TotalItems())
	assert.Equal(t, "109.98", cart.TotalPrice().String())
}

func TestCart_MixedCurrenciesAreSummedAndReported(t *testing.T) {
	c := NewCart()
	usd := product(1, "A", "10", 1)
	eur := product(2, "B", "5", 1)
	eur.Currency = "EUR"

	c.AddItem(usd)
	c.AddItem(eur)
	c.AddItem(usd)

	assert.Equal(t, "25", c.TotalPrice().String())
	assert.Equal(t, []string{"USD", "EUR"}, c.Currencies())
}

func TestCart_ItemsIsACopy(t *testing.T) {
	c := NewCart()
	c.AddItem(product(1, "A", "1", 1))

	items := c.Items()
	items[0].Title = "changed"
	assert.Equal(t, "A", c.Items()[0].Title)
}

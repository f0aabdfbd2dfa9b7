package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSource_Fetch(t *testing.T) {
	t.Run("json array", func(t *testing.T) {
		products, err := NewFileSource(writeFile(t, "products.json", twoProducts)).Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("ndjson", func(t *testing.T) {
		path := writeFile(t, "products.ndjson",
			"{\"id\":1,\"title\":\"N1\",\"price\":1,\"currency\":\"USD\",\"rating\":1}\n"+
				"{\"id\":2,\"title\":\"N2\",\"price\":2,\"currency\":\"USD\",\"rating\":2}\n")
		products, err := NewFileSource(path).Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Fetch(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewFileSource(writeFile(t, "p.json", twoProducts)).Fetch(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestStaticSource_Fetch(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Title: "A", Price: decimal.NewFromInt(1), Currency: "USD", Rating: 1},
	}
	src := NewStaticSource(products)
	products[0].Title = "changed"

	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", got[0].Title)

	t.Run("invalid products are rejected", func(t *testing.T) {
		bad := NewStaticSource([]domain.Product{{ID: 1, Title: "", Currency: "USD"}})
		_, err := bad.Fetch(context.Background())
		assert.True(t, domain.IsInvalidProductError(err))
	})
}

func TestNewSourceFactory(t *testing.T) {
	cases := []struct {
		kind, location string
		wantErr        bool
		want           interface{}
	}{
		{kind: "http", location: "http://example.com/products", want: &HTTPSource{}},
		{kind: "url", location: "http://example.com/products", want: &HTTPSource{}},
		{kind: "file", location: "data/products.json", want: &FileSource{}},
		{kind: "http", location: "", wantErr: true},
		{kind: "file", location: "", wantErr: true},
		{kind: "ftp", location: "ftp://x", wantErr: true},
	}

	for _, c := range cases {
		t.Run(c.kind+"_"+c.location, func(t *testing.T) {
			src, err := NewSource(c.kind, c.location, time.Second)
			if c.wantErr {
				assert.Error(t, err)
				assert.Nil(t, src)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, c.want, src)
		})
	}
}

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/niksmo/storefront/internal/core/domain"
)

func TestParseTruthy(t *testing.T) {
	t.Run("TruthyTokens", func(t *testing.T) {
		for _, v := range []string{"TRUE", "Yes", "1", "y", " true ", "Y"} {
			assert.True(t, domain.ParseTruthy(v), v)
		}
	})

	t.Run("FalsyTokens", func(t *testing.T) {
		for _, v := range []string{"no", "", "0", "false", "ya", "10"} {
			assert.False(t, domain.ParseTruthy(v), v)
		}
	})
}

func TestParseSortMode(t *testing.T) {
	t.Run("KnownModes", func(t *testing.T) {
		assert.Equal(t, domain.SortPriceAsc, domain.ParseSortMode("price_asc"))
		assert.Equal(t, domain.SortPriceDesc, domain.ParseSortMode("price_desc"))
		assert.Equal(t, domain.SortNameAsc, domain.ParseSortMode("name_asc"))
		assert.Equal(t, domain.SortFeatured, domain.ParseSortMode("featured"))
	})

	t.Run("FallsBackToFeatured", func(t *testing.T) {
		assert.Equal(t, domain.SortFeatured, domain.ParseSortMode(""))
		assert.Equal(t, domain.SortFeatured, domain.ParseSortMode("price"))
	})
}

func TestProductInStock(t *testing.T) {
	assert.True(t, domain.Product{Stock: 1}.InStock())
	assert.False(t, domain.Product{Stock: 0}.InStock())
	assert.False(t, domain.Product{Stock: -3}.InStock())
}

package gviz_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niksmo/storefront/internal/adapter/gviz"
)

const envelope = `/*O_o*/
google.visualization.Query.setResponse({"version":"0.6","table":{
"cols":[{"label":"SKU"},{"label":"Name"},{"label":"Category"},{"label":"Price"},
{"label":"Stock"},{"label":"Image"},{"label":"Short"},{"label":"Specs"},{"label":"Featured"}],
"rows":[
{"c":[{"v":"A1"},{"v":"Cable"},{"v":"Cables"},{"v":10000},{"v":4},null,{"v":"short"},null,{"v":"no"}]},
{"c":[{"v":"A2"},{"v":"Adapter"},null,{"v":5000},null,null,null,null,{"v":"yes"}]},
{"c":[{"v":""},{"v":"Nameless"},null,{"v":1},null,null,null,null,null]}
]}});`

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	s := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			fmt.Fprint(w, body)
		},
	))
	t.Cleanup(s.Close)
	return s
}

func newLoader(baseURL string) gviz.Loader {
	return gviz.NewLoader(gviz.LoaderConfig{
		BaseURL:          baseURL,
		SheetID:          "testSheetID",
		SheetName:        "Products",
		PlaceholderImage: "assets/placeholder.png",
		FallbackCategory: "Parts",
	})
}

func TestLoader(t *testing.T) {
	t.Run("LoadsCatalogFromEnvelope", func(t *testing.T) {
		s := newServer(t, http.StatusOK, envelope)

		catalog, err := newLoader(s.URL).Load(t.Context())
		require.NoError(t, err)
		require.Len(t, catalog, 2)

		assert.Equal(t, "A1", catalog[0].SKU)
		assert.Equal(t, "Cables", catalog[0].Category)
		assert.Equal(t, float64(10000), catalog[0].Price)
		assert.Equal(t, 4, catalog[0].Stock)
		assert.Equal(t, "assets/placeholder.png", catalog[0].Image)
		assert.False(t, catalog[0].Featured)

		assert.Equal(t, "A2", catalog[1].SKU)
		assert.Equal(t, "Parts", catalog[1].Category)
		assert.Equal(t, 0, catalog[1].Stock)
		assert.True(t, catalog[1].Featured)
	})

	t.Run("NonSuccessStatusIsTransportError", func(t *testing.T) {
		s := newServer(t, http.StatusBadGateway, "upstream error")

		_, err := newLoader(s.URL).Load(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, gviz.ErrTransport)
	})

	t.Run("UnreachableHostIsTransportError", func(t *testing.T) {
		s := newServer(t, http.StatusOK, envelope)
		s.Close()

		_, err := newLoader(s.URL).Load(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, gviz.ErrTransport)
	})

	t.Run("UnwrappableBodyIsMalformedPayload", func(t *testing.T) {
		s := newServer(t, http.StatusOK, "<!DOCTYPE html><p>sign in</p>")

		_, err := newLoader(s.URL).Load(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, gviz.ErrMalformedPayload)
	})

	t.Run("InvalidInnerJSONIsMalformedPayload", func(t *testing.T) {
		s := newServer(t, http.StatusOK, "setResponse({broken});")

		_, err := newLoader(s.URL).Load(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, gviz.ErrMalformedPayload)
	})

	t.Run("MissingTableIsMalformedPayload", func(t *testing.T) {
		s := newServer(t, http.StatusOK, `setResponse({"version":"0.6"});`)

		_, err := newLoader(s.URL).Load(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, gviz.ErrMalformedPayload)
	})

	t.Run("EmptyTableIsEmptyCatalog", func(t *testing.T) {
		body := `setResponse({"table":{"cols":[{"label":"sku"},{"label":"name"}],"rows":[]}});`
		s := newServer(t, http.StatusOK, body)

		catalog, err := newLoader(s.URL).Load(t.Context())
		require.NoError(t, err)
		assert.Empty(t, catalog)
	})
}

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutapaslibrary/library-server/internal/search"
)

func TestSearch(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/search?q=stoic")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	result := decode[search.SearchResult](t, resp).Data
	assert.Equal(t, "stoic", result.Query)
	require.NotEmpty(t, result.Hits)

	var slugs []string
	for _, hit := range result.Hits {
		slugs = append(slugs, hit.Slug)
	}
	assert.Contains(t, slugs, "letters-from-a-stoic")
}

func TestSearch_IndexFollowsCatalog(t *testing.T) {
	ts := setupTestServer(t)
	admin := ts.signIn(t, testAdminEmail, "")

	slug := addPricedBook(t, ts, admin, "Quantum Gardening", 10)

	hits := decode[search.SearchResult](t, ts.api.Get("/api/v1/search?q=quantum")).Data.Hits
	require.Len(t, hits, 1)
	assert.Equal(t, slug, hits[0].Slug)

	require.Equal(t, http.StatusOK, ts.api.Delete("/api/v1/books/"+slug, admin).Code)
	assert.Empty(t, decode[search.SearchResult](t, ts.api.Get("/api/v1/search?q=quantum")).Data.Hits)
}

func TestSearch_LimitBounds(t *testing.T) {
	ts := setupTestServer(t)

	assert.Equal(t, http.StatusBadRequest, ts.api.Get("/api/v1/search?q=a&limit=500").Code)
}

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/service"
)

func testBookBody() map[string]any {
	return map[string]any{
		"title":  "Test Book",
		"author": "Jane Doe",
		"price":  100,
		"tags":   "one, two",
		"chapters": []map[string]any{
			{"title": "Start", "content": "Once upon a time."},
			{"content": "The end."},
		},
	}
}

func TestListBooks(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/books")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[ListBooksResponse](t, resp)
	require.Equal(t, 6, env.Data.Total)
	assert.Equal(t, "meditations", env.Data.Books[0].Slug)
}

func TestAddBook(t *testing.T) {
	ts := setupTestServer(t)
	admin := ts.signIn(t, testAdminEmail, "Sutapa")

	resp := ts.api.Post("/api/v1/books", admin, testBookBody())
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	book := decode[domain.Book](t, resp).Data
	assert.Equal(t, "test-book", book.Slug)
	assert.Equal(t, 2, book.TotalChapters)
	assert.Equal(t, []string{"one", "two"}, book.Tags)
	assert.Equal(t, testAdminEmail, book.AddedBy)

	list := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books")).Data
	assert.Equal(t, 7, list.Total)
	assert.Equal(t, "test-book", list.Books[6].Slug)
}

func TestAddBook_ValidationDetails(t *testing.T) {
	ts := setupTestServer(t)
	admin := ts.signIn(t, testAdminEmail, "")

	resp := ts.api.Post("/api/v1/books", admin, map[string]any{
		"author":   "Jane",
		"chapters": []map[string]any{{"content": " "}},
	})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	env := decode[any](t, resp)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Equal(t, "is required", env.Details["title"])
	assert.Equal(t, "is required", env.Details["price"])
	assert.Equal(t, "is required", env.Details["chapters[0].content"])
}

func TestAddBook_NonAdminRejected(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books", testBookBody())
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	reader := ts.signIn(t, "reader@example.com", "")
	resp = ts.api.Post("/api/v1/books", reader, testBookBody())
	assert.Equal(t, http.StatusForbidden, resp.Code)

	list := decode[ListBooksResponse](t, ts.api.Get("/api/v1/books")).Data
	assert.Equal(t, 6, list.Total)
}

func TestGetBook(t *testing.T) {
	ts := setupTestServer(t)
	reader := ts.signIn(t, "reader@example.com", "")

	resp := ts.api.Get("/api/v1/books/meditations", reader)
	require.Equal(t, http.StatusOK, resp.Code)

	detail := decode[service.BookDetail](t, resp).Data
	assert.Equal(t, "Meditations", detail.Book.Title)
	assert.True(t, detail.CanPurchase)
	assert.True(t, detail.BuiltIn)
	assert.NotEmpty(t, detail.Reviews)

	resp = ts.api.Get("/api/v1/books/no-such-book")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decode[any](t, resp).Code)
}

func TestDeleteBook(t *testing.T) {
	ts := setupTestServer(t)
	admin := ts.signIn(t, testAdminEmail, "")

	resp := ts.api.Post("/api/v1/books", admin, testBookBody())
	require.Equal(t, http.StatusCreated, resp.Code)

	reader := ts.signIn(t, "reader@example.com", "")
	resp = ts.api.Delete("/api/v1/books/test-book", reader)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Delete("/api/v1/books/meditations", admin)
	require.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "built-in books cannot be deleted", decode[any](t, resp).Error)

	resp = ts.api.Delete("/api/v1/books/test-book", admin)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, decode[DeleteBookResponse](t, resp).Data.Deleted)

	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/books/test-book").Code)
	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/read/test-book/1").Code)
}

func TestReviews(t *testing.T) {
	ts := setupTestServer(t)

	before := decode[struct {
		Reviews []domain.Review `json:"reviews"`
	}](t, ts.api.Get("/api/v1/books/meditations/reviews")).Data.Reviews

	resp := ts.api.Post("/api/v1/books/meditations/reviews", map[string]any{"content": "Great"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	reader := ts.signIn(t, "reader@example.com", "Reader")
	resp = ts.api.Post("/api/v1/books/meditations/reviews", reader, map[string]any{"content": "Great", "rating": 4})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	review := decode[domain.Review](t, resp).Data
	assert.Equal(t, 4, review.Rating)
	assert.Equal(t, "Reader", review.UserName)

	after := decode[struct {
		Reviews []domain.Review `json:"reviews"`
	}](t, ts.api.Get("/api/v1/books/meditations/reviews")).Data.Reviews
	require.Len(t, after, len(before)+1)
	assert.Equal(t, review.ID, after[0].ID)

	resp = ts.api.Post("/api/v1/books/meditations/reviews", reader, map[string]any{"content": "x", "rating": 9})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	assert.Equal(t, http.StatusNotFound, ts.api.Get("/api/v1/books/nope/reviews").Code)
}

package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/service"
)

func validPayment() map[string]any {
	return map[string]any{
		"cardName":   "Jane Reader",
		"cardNumber": "4242 4242 4242 4242",
		"expiryDate": "1229",
		"cvv":        "123",
		"address":    "12 Park Street",
		"city":       "Kolkata",
		"zipCode":    "700016",
	}
}

func addPricedBook(t *testing.T, ts *testServer, admin, title string, price float64) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/books", admin, map[string]any{
		"title":    title,
		"author":   "Test Author",
		"price":    price,
		"chapters": []map[string]any{{"content": "Text."}},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[domain.Book](t, resp).Data.Slug
}

func TestCheckout(t *testing.T) {
	ts := setupTestServer(t)
	admin := ts.signIn(t, testAdminEmail, "")
	reader := ts.signIn(t, "reader@example.com", "")

	first := addPricedBook(t, ts, admin, "First Book", 100)
	second := addPricedBook(t, ts, admin, "Second Book", 250.50)

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/cart", reader, map[string]any{"slug": first}).Code)
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/cart", reader, map[string]any{"slug": second}).Code)

	resp := ts.api.Post("/api/v1/checkout", reader, validPayment())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	receipt := decode[service.Receipt](t, resp).Data
	assert.NotEmpty(t, receipt.OrderID)
	assert.Equal(t, "reader@example.com", receipt.Email)
	assert.InDelta(t, 350.50, receipt.Total, 0.001)
	assert.Len(t, receipt.Recorded, 2)

	cart := decode[service.CartView](t, ts.api.Get("/api/v1/cart", reader)).Data
	assert.Zero(t, cart.Count)

	detail := decode[service.BookDetail](t, ts.api.Get("/api/v1/books/"+first, reader)).Data
	assert.True(t, detail.Purchased)
	assert.False(t, detail.CanPurchase)
}

func TestCheckout_EmptyCart(t *testing.T) {
	ts := setupTestServer(t)
	reader := ts.signIn(t, "reader@example.com", "")

	resp := ts.api.Post("/api/v1/checkout", reader, validPayment())
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "your cart is empty", decode[any](t, resp).Error)
}

func TestCheckout_InvalidForm(t *testing.T) {
	ts := setupTestServer(t)
	reader := ts.signIn(t, "reader@example.com", "")
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/cart", reader, map[string]any{"slug": "meditations"}).Code)

	resp := ts.api.Post("/api/v1/checkout", reader, map[string]any{
		"cardName":   "Jane",
		"cardNumber": "1234",
		"expiryDate": "13/29",
		"cvv":        "12",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	env := decode[any](t, resp)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Contains(t, env.Details, "cardNumber")
	assert.Contains(t, env.Details, "expiryDate")
	assert.Contains(t, env.Details, "cvv")
	assert.Contains(t, env.Details, "address")
	assert.Contains(t, env.Details, "city")
	assert.Contains(t, env.Details, "zipCode")

	// Nothing was bought and the cart is untouched.
	assert.Equal(t, 1, decode[service.CartView](t, ts.api.Get("/api/v1/cart", reader)).Data.Count)
}

func TestCheckout_RequiresSession(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/checkout", validPayment())
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

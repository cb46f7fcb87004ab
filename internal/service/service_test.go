package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/kv"
	"github.com/sutapaslibrary/library-server/internal/metrics"
	"github.com/sutapaslibrary/library-server/internal/pricing"
	"github.com/sutapaslibrary/library-server/internal/search"
	"github.com/sutapaslibrary/library-server/internal/store"
	"github.com/sutapaslibrary/library-server/internal/validation"
)

var (
	testAdmin  = &domain.Identity{Email: "sutapajana353@gmail.com", Name: "Sutapa", Role: domain.RoleAdmin}
	testAdmin2 = &domain.Identity{Email: "second@example.com", Name: "Second", Role: domain.RoleAdmin}
	testReader = &domain.Identity{Email: "reader@example.com", Name: "Reader", Role: domain.RoleMember}
)

// testServices bundles every service over one in-memory storage.
type testServices struct {
	store    *store.Store
	catalog  *CatalogService
	cart     *CartService
	checkout *CheckoutService
	library  *LibraryService
	reader   *ReaderService
	reviews  *ReviewService
	search   *SearchService
	slept    []time.Duration
}

func setupServices(t *testing.T, scope store.CartScope) *testServices {
	t.Helper()

	storage, err := kv.OpenBadgerInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	logger := slog.New(slog.DiscardHandler)
	validator := validation.New()
	m := metrics.New()

	formatter, err := pricing.NewFormatter("INR", "en-IN")
	require.NoError(t, err)

	st := store.New(storage, store.Options{Logger: logger, Validator: validator, CartScope: scope})

	index, err := search.NewSearchIndex(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	ts := &testServices{store: st}
	ts.search = NewSearchService(index, st, logger)
	require.NoError(t, ts.search.Reindex(context.Background()))

	ts.reviews = NewReviewService(st, validator, m, logger)
	ts.reviews.now = func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) }
	ts.catalog = NewCatalogService(st, ts.reviews, ts.search, validator, m, logger)
	ts.cart = NewCartService(st, formatter, m, logger)
	ts.checkout = NewCheckoutService(st, validator, formatter, m, DefaultCheckoutDelay, logger)
	ts.checkout.sleep = func(d time.Duration) { ts.slept = append(ts.slept, d) }
	ts.library = NewLibraryService(st, formatter, logger)
	ts.reader = NewReaderService(st)

	return ts
}

func ctx() context.Context { return context.Background() }

func price(v float64) *float64 { return &v }

// addCustomBook authors a chapterless custom book as admin.
func (ts *testServices) addCustomBook(t *testing.T, title string, p float64) *domain.Book {
	t.Helper()
	book, err := ts.catalog.AddBook(ctx(), testAdmin, AddBookInput{
		Title:         title,
		Author:        "Test Author",
		Price:         price(p),
		TotalChapters: 1,
	})
	require.NoError(t, err)
	return book
}

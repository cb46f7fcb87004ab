package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/sutapaslibrary/library-server/internal/errors"
	"github.com/sutapaslibrary/library-server/internal/kv"
	"github.com/sutapaslibrary/library-server/internal/seed"
	"github.com/sutapaslibrary/library-server/internal/store"
)

func TestCatalog_AddComputesSlug(t *testing.T) {
	s, _ := setupTestStore(t, store.Options{})

	book, err := s.Catalog.Add(ctx(), store.NewBook{Title: "Test Book", Author: "A", Price: price(100)})
	require.NoError(t, err)
	assert.Equal(t, "test-book", book.Slug)
	assert.Equal(t, fixedNow, book.CreatedAt)
	assert.NotNil(t, book.Tags)

	all, err := s.Catalog.ListAll(ctx())
	require.NoError(t, err)

	builtIns := seed.Books()
	require.Len(t, all, len(builtIns)+1)
	assert.Equal(t, builtIns[0].Slug, all[0].Slug, "built-ins come first")
	assert.Equal(t, "test-book", all[len(all)-1].Slug)
}

func TestCatalog_AddRequiresFields(t *testing.T) {
	tests := []struct {
		name  string
		input store.NewBook
		field string
	}{
		{"missing title", store.NewBook{Author: "A", Price: price(1)}, "title"},
		{"blank author", store.NewBook{Title: "T", Author: "   ", Price: price(1)}, "author"},
		{"missing price", store.NewBook{Title: "T", Author: "A"}, "price"},
		{"negative price", store.NewBook{Title: "T", Author: "A", Price: price(-1)}, "price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, storage := setupTestStore(t, store.Options{})

			_, err := s.Catalog.Add(ctx(), tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)

			var domErr *domainerrors.Error
			require.ErrorAs(t, err, &domErr)
			assert.Contains(t, domErr.Details, tt.field)

			// No write happened.
			_, err = storage.Get(ctx(), kv.KeyCustomBooks)
			assert.ErrorIs(t, err, kv.ErrKeyNotFound)
		})
	}
}

func TestCatalog_FindPrefersBuiltIn(t *testing.T) {
	s, _ := setupTestStore(t, store.Options{})

	// Shadowed by the built-in with the same slug.
	_, err := s.Catalog.Add(ctx(), store.NewBook{Title: "Meditations", Author: "Impostor", Price: price(1)})
	require.NoError(t, err)

	found, err := s.Catalog.Find(ctx(), "meditations")
	require.NoError(t, err)
	assert.Equal(t, "Marcus Aurelius", found.Author)
	assert.True(t, s.Catalog.IsBuiltIn("meditations"))

	// First custom match wins among customs.
	_, err = s.Catalog.Add(ctx(), store.NewBook{Title: "Dune", Author: "First", Price: price(1)})
	require.NoError(t, err)
	_, err = s.Catalog.Add(ctx(), store.NewBook{Title: "DUNE", Author: "Second", Price: price(1)})
	require.NoError(t, err)

	found, err = s.Catalog.Find(ctx(), "dune")
	require.NoError(t, err)
	assert.Equal(t, "First", found.Author)
	assert.False(t, s.Catalog.IsBuiltIn("dune"))
}

func TestCatalog_FindNotFound(t *testing.T) {
	s, _ := setupTestStore(t, store.Options{})

	_, err := s.Catalog.Find(ctx(), "nope")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalog_RemoveOnlyAffectsCustom(t *testing.T) {
	s, _ := setupTestStore(t, store.Options{})

	_, err := s.Catalog.Add(ctx(), store.NewBook{Title: "Dune", Author: "A", Price: price(1)})
	require.NoError(t, err)
	_, err = s.Catalog.Add(ctx(), store.NewBook{Title: "Dune", Author: "B", Price: price(1)})
	require.NoError(t, err)
	_, err = s.Catalog.Add(ctx(), store.NewBook{Title: "Emma", Author: "C", Price: price(1)})
	require.NoError(t, err)

	removed, err := s.Catalog.Remove(ctx(), "dune")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	removed, err = s.Catalog.Remove(ctx(), "meditations")
	require.NoError(t, err)
	assert.Zero(t, removed)

	custom, err := s.Catalog.Custom(ctx())
	require.NoError(t, err)
	require.Len(t, custom, 1)
	assert.Equal(t, "emma", custom[0].Slug)

	_, err = s.Catalog.Find(ctx(), "meditations")
	assert.NoError(t, err)
}

func TestCatalog_MalformedIsEmpty(t *testing.T) {
	s, storage := setupTestStore(t, store.Options{})
	require.NoError(t, storage.Set(ctx(), kv.KeyCustomBooks, []byte(`{not json`)))

	custom, err := s.Catalog.Custom(ctx())
	require.NoError(t, err)
	assert.Empty(t, custom)

	all, err := s.Catalog.ListAll(ctx())
	require.NoError(t, err)
	assert.Len(t, all, len(seed.Books()))

	// A subsequent add overwrites the corrupt value.
	_, err = s.Catalog.Add(ctx(), store.NewBook{Title: "Fresh", Author: "A", Price: price(0)})
	require.NoError(t, err)
	custom, err = s.Catalog.Custom(ctx())
	require.NoError(t, err)
	assert.Len(t, custom, 1)
}

func TestCatalog_ReadsBrowserShapes(t *testing.T) {
	s, storage := setupTestStore(t, store.Options{})

	raw := `[{"slug":"my-book","title":"My Book","author":"Me","description":"d",
		"coverImage":"https://example.com/c.jpg","coverColor":"from-blue-500 to-purple-500",
		"tags":["a"],"totalChapters":2,"price":99.5,
		"createdAt":"2024-05-01T10:20:30.123Z","addedBy":"sutapajana353@gmail.com"}]`
	require.NoError(t, storage.Set(ctx(), kv.KeyCustomBooks, []byte(raw)))

	book, err := s.Catalog.Find(ctx(), "my-book")
	require.NoError(t, err)
	assert.Equal(t, 99.5, book.Price)
	assert.Equal(t, 2, book.TotalChapters)
	assert.Equal(t, "sutapajana353@gmail.com", book.AddedBy)
	assert.Equal(t, 2024, book.CreatedAt.Year())
}

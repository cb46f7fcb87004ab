package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/kv"
	"github.com/sutapaslibrary/library-server/internal/sse"
	"github.com/sutapaslibrary/library-server/internal/store"
)

func TestCart_AddDedupsBySlug(t *testing.T) {
	emitter := &recordingEmitter{}
	s, _ := setupTestStore(t, store.Options{Emitter: emitter})

	book := domain.Book{Slug: "meditations", Title: "Meditations", Price: 199}

	added, err := s.Cart.Add(ctx(), "me@example.com", book)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Cart.Add(ctx(), "me@example.com", book)
	require.NoError(t, err)
	assert.False(t, added)

	entries, err := s.Cart.List(ctx(), "me@example.com")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// Only the write that changed the cart emits.
	assert.Equal(t, 1, emitter.count())
	assert.Equal(t, sse.EventCartChanged, emitter.events[0].Type)
	assert.Equal(t, kv.KeyCart, emitter.events[0].Scope)
}

func TestCart_RemoveAndClear(t *testing.T) {
	emitter := &recordingEmitter{}
	s, _ := setupTestStore(t, store.Options{Emitter: emitter})

	for _, slug := range []string{"a", "b", "c"} {
		_, err := s.Cart.Add(ctx(), "", domain.Book{Slug: slug})
		require.NoError(t, err)
	}

	require.NoError(t, s.Cart.Remove(ctx(), "", "b"))
	entries, err := s.Cart.List(ctx(), "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Slug)
	assert.Equal(t, "c", entries[1].Slug)

	require.NoError(t, s.Cart.Clear(ctx(), ""))
	entries, err = s.Cart.List(ctx(), "")
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Equal(t, 5, emitter.count())
}

func TestCart_GlobalScopeIsShared(t *testing.T) {
	s, _ := setupTestStore(t, store.Options{})

	_, err := s.Cart.Add(ctx(), "alice@example.com", domain.Book{Slug: "a"})
	require.NoError(t, err)

	entries, err := s.Cart.List(ctx(), "bob@example.com")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, store.CartScopeGlobal, s.Cart.Scope())
}

func TestCart_UserScopeIsolates(t *testing.T) {
	emitter := &recordingEmitter{}
	s, storage := setupTestStore(t, store.Options{Emitter: emitter, CartScope: store.CartScopeUser})

	_, err := s.Cart.Add(ctx(), "alice@example.com", domain.Book{Slug: "a"})
	require.NoError(t, err)

	entries, err := s.Cart.List(ctx(), "bob@example.com")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = storage.Get(ctx(), "cart-alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "cart-alice@example.com", emitter.events[0].Scope)
}

func TestCart_MalformedIsEmpty(t *testing.T) {
	s, storage := setupTestStore(t, store.Options{})
	require.NoError(t, storage.Set(ctx(), kv.KeyCart, []byte(`"oops"`)))

	entries, err := s.Cart.List(ctx(), "")
	require.NoError(t, err)
	assert.Empty(t, entries)

	added, err := s.Cart.Add(ctx(), "", domain.Book{Slug: "a"})
	require.NoError(t, err)
	assert.True(t, added)
}

func TestParseCartScope(t *testing.T) {
	scope, err := store.ParseCartScope("")
	require.NoError(t, err)
	assert.Equal(t, store.CartScopeGlobal, scope)

	scope, err = store.ParseCartScope("user")
	require.NoError(t, err)
	assert.Equal(t, store.CartScopeUser, scope)

	_, err = store.ParseCartScope("tab")
	assert.Error(t, err)
}

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/kv"
	"github.com/sutapaslibrary/library-server/internal/store"
)

func TestContent_SetAndGet(t *testing.T) {
	s, storage := setupTestStore(t, store.Options{})

	err := s.Content.SetAllChapters(ctx(), "my-book", []domain.Chapter{
		{Title: "One", Content: "first"},
		{Title: "Two", Content: "second"},
	})
	require.NoError(t, err)

	ch, ok, err := s.Content.GetChapter(ctx(), "my-book", 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", ch.Content)

	_, ok, err = s.Content.GetChapter(ctx(), "my-book", 3)
	require.NoError(t, err)
	assert.False(t, ok)

	// Persisted with string indices.
	raw, err := storage.Get(ctx(), kv.KeyBookContent)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"my-book":{"1":{"title":"One","content":"first"},"2":{"title":"Two","content":"second"}}}`,
		string(raw))
}

func TestContent_SetReplacesWholeMap(t *testing.T) {
	s, _ := setupTestStore(t, store.Options{})

	require.NoError(t, s.Content.SetAllChapters(ctx(), "b", []domain.Chapter{{Title: "1"}, {Title: "2"}, {Title: "3"}}))
	require.NoError(t, s.Content.SetAllChapters(ctx(), "b", []domain.Chapter{{Title: "only"}}))

	_, ok, err := s.Content.GetChapter(ctx(), "b", 3)
	require.NoError(t, err)
	assert.False(t, ok)

	ch, ok, err := s.Content.GetChapter(ctx(), "b", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "only", ch.Title)
}

func TestContent_BuiltInFirst(t *testing.T) {
	s, _ := setupTestStore(t, store.Options{})

	require.NoError(t, s.Content.SetAllChapters(ctx(), "meditations", []domain.Chapter{{Title: "Impostor"}}))

	ch, ok, err := s.Content.GetChapter(ctx(), "meditations", 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, "Impostor", ch.Title)
}

func TestContent_DeleteBook(t *testing.T) {
	s, _ := setupTestStore(t, store.Options{})

	require.NoError(t, s.Content.SetAllChapters(ctx(), "a", []domain.Chapter{{Title: "A"}}))
	require.NoError(t, s.Content.SetAllChapters(ctx(), "b", []domain.Chapter{{Title: "B"}}))

	require.NoError(t, s.Content.DeleteBook(ctx(), "a"))
	require.NoError(t, s.Content.DeleteBook(ctx(), "missing"))

	_, ok, err := s.Content.GetChapter(ctx(), "a", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Content.GetChapter(ctx(), "b", 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestContent_MalformedIsMissing(t *testing.T) {
	s, storage := setupTestStore(t, store.Options{})
	require.NoError(t, storage.Set(ctx(), kv.KeyBookContent, []byte(`[1,2,3]`)))

	_, ok, err := s.Content.GetChapter(ctx(), "a", 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

package store

import (
	"context"
	"strconv"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/kv"
	"github.com/sutapaslibrary/library-server/internal/seed"
)

// ContentMap is the persisted shape under kv.KeyBookContent:
// slug → chapter index (decimal string) → chapter.
type ContentMap map[string]map[string]domain.Chapter

// Content stores chapter text for custom books. Built-in chapter text comes
// from the seed and is consulted first.
type Content struct {
	store *Store
}

func (c *Content) load(ctx context.Context) (ContentMap, error) {
	all, _, err := readJSON[ContentMap](ctx, c.store, kv.KeyBookContent)
	if err != nil {
		return nil, err
	}
	if all == nil {
		all = ContentMap{}
	}
	return all, nil
}

// GetChapter returns the chapter at the 1-based index. A missing chapter is
// reported with ok=false, not an error.
func (c *Content) GetChapter(ctx context.Context, slug string, index int) (domain.Chapter, bool, error) {
	if ch, ok := seed.Chapter(slug, index); ok {
		return ch, true, nil
	}

	all, err := c.load(ctx)
	if err != nil {
		return domain.Chapter{}, false, err
	}

	ch, ok := all[slug][strconv.Itoa(index)]
	return ch, ok, nil
}

// SetAllChapters replaces the whole chapter map for slug. chapters[0] becomes
// chapter 1. There is no merge with previously stored chapters.
func (c *Content) SetAllChapters(ctx context.Context, slug string, chapters []domain.Chapter) error {
	all, err := c.load(ctx)
	if err != nil {
		return err
	}

	byIndex := make(map[string]domain.Chapter, len(chapters))
	for i, ch := range chapters {
		byIndex[strconv.Itoa(i+1)] = ch
	}
	all[slug] = byIndex

	return c.store.writeJSON(ctx, kv.KeyBookContent, all)
}

// DeleteBook removes the slug's chapter map entirely.
func (c *Content) DeleteBook(ctx context.Context, slug string) error {
	all, err := c.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[slug]; !ok {
		return nil
	}
	delete(all, slug)

	return c.store.writeJSON(ctx, kv.KeyBookContent, all)
}

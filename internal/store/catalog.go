package store

import (
	"context"
	"log/slog"
	"slices"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/kv"
	"github.com/sutapaslibrary/library-server/internal/seed"
	"github.com/sutapaslibrary/library-server/internal/util"
	"github.com/sutapaslibrary/library-server/internal/validation"
)

// NewBook is the input to Catalog.Add. The slug and creation time are
// computed by the store.
type NewBook struct {
	Title         string   `json:"title" validate:"notblank"`
	Author        string   `json:"author" validate:"notblank"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Description   string   `json:"description"`
	CoverImage    string   `json:"coverImage"`
	CoverColor    string   `json:"coverColor"`
	AddedBy       string   `json:"addedBy"`
	Tags          []string `json:"tags"`
	TotalChapters int      `json:"totalChapters" validate:"gte=0"`
}

// Catalog merges the built-in seed list with custom books persisted under
// kv.KeyCustomBooks.
type Catalog struct {
	store     *Store
	validator *validation.Validator
}

// ListAll returns the built-in books followed by the custom books, both in
// insertion order.
func (c *Catalog) ListAll(ctx context.Context) ([]domain.Book, error) {
	custom, err := c.Custom(ctx)
	if err != nil {
		return nil, err
	}
	return append(seed.Books(), custom...), nil
}

// Custom returns only the persisted custom books.
func (c *Catalog) Custom(ctx context.Context) ([]domain.Book, error) {
	return c.store.readBooks(ctx, kv.KeyCustomBooks)
}

// Add validates the input, derives the slug from the title and appends the
// book to the custom list. Slugs are not checked for uniqueness.
func (c *Catalog) Add(ctx context.Context, input NewBook) (*domain.Book, error) {
	if err := c.validator.Validate(input); err != nil {
		return nil, err
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	book := domain.Book{
		Slug:          util.BookSlug(input.Title),
		Title:         input.Title,
		Author:        input.Author,
		Description:   input.Description,
		CoverImage:    input.CoverImage,
		CoverColor:    input.CoverColor,
		Tags:          slices.Clone(tags),
		TotalChapters: input.TotalChapters,
		Price:         *input.Price,
		CreatedAt:     c.store.now().UTC(),
		AddedBy:       input.AddedBy,
	}

	custom, err := c.Custom(ctx)
	if err != nil {
		return nil, err
	}
	custom = append(custom, book)

	if err := c.store.writeJSON(ctx, kv.KeyCustomBooks, custom); err != nil {
		return nil, err
	}

	c.store.logger.Debug("custom book added",
		slog.String("slug", book.Slug),
		slog.Int("custom_count", len(custom)))

	return &book, nil
}

// Find resolves a slug to a book. Built-in books take precedence over custom
// books, and among custom books the first match wins.
func (c *Catalog) Find(ctx context.Context, slug string) (*domain.Book, error) {
	if b, ok := findBuiltIn(slug); ok {
		return b, nil
	}

	custom, err := c.Custom(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfSlug(custom, slug); i >= 0 {
		return &custom[i], nil
	}
	return nil, ErrBookNotFound
}

// IsBuiltIn reports whether slug names a built-in book.
func (c *Catalog) IsBuiltIn(slug string) bool {
	_, ok := findBuiltIn(slug)
	return ok
}

// Remove deletes every custom book with the slug and reports how many were
// removed. Built-in books are never affected.
func (c *Catalog) Remove(ctx context.Context, slug string) (int, error) {
	custom, err := c.Custom(ctx)
	if err != nil {
		return 0, err
	}

	kept := slices.DeleteFunc(slices.Clone(custom), func(b domain.Book) bool {
		return b.Slug == slug
	})
	removed := len(custom) - len(kept)

	if err := c.store.writeJSON(ctx, kv.KeyCustomBooks, kept); err != nil {
		return 0, err
	}

	c.store.logger.Debug("custom book removed",
		slog.String("slug", slug),
		slog.Int("removed", removed))

	return removed, nil
}

func findBuiltIn(slug string) (*domain.Book, bool) {
	books := seed.Books()
	if i := indexOfSlug(books, slug); i >= 0 {
		return &books[i], true
	}
	return nil, false
}

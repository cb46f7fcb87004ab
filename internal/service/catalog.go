package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sutapaslibrary/library-server/internal/domain"
	domainerrors "github.com/sutapaslibrary/library-server/internal/errors"
	"github.com/sutapaslibrary/library-server/internal/metrics"
	"github.com/sutapaslibrary/library-server/internal/sanitize"
	"github.com/sutapaslibrary/library-server/internal/store"
	"github.com/sutapaslibrary/library-server/internal/util"
	"github.com/sutapaslibrary/library-server/internal/validation"
)

// Defaults for fields the authoring form leaves blank.
const (
	DefaultDescription = "No description available"
	DefaultCoverImage  = "https://images.unsplash.com/photo-1544947950-fa07a98d237f"
	DefaultCoverColor  = "from-blue-500 to-purple-500"
)

// ChapterInput is one chapter of a book being authored.
type ChapterInput struct {
	Title   string `json:"title"`
	Content string `json:"content" validate:"notblank"`
}

// AddBookInput is the admin authoring form. When Chapters is non-empty the
// chapter count comes from it; otherwise TotalChapters must be given.
type AddBookInput struct {
	Title         string         `json:"title" validate:"notblank"`
	Author        string         `json:"author" validate:"notblank"`
	Description   string         `json:"description"`
	Price         *float64       `json:"price" validate:"required,gte=0"`
	CoverImage    string         `json:"coverImage"`
	CoverColor    string         `json:"coverColor"`
	Tags          string         `json:"tags"` // comma-separated
	TotalChapters int            `json:"totalChapters"`
	Chapters      []ChapterInput `json:"chapters" validate:"dive"`
}

// BookDetail is a book as seen by one caller.
type BookDetail struct {
	Book        domain.Book     `json:"book"`
	Purchased   bool            `json:"purchased"`
	InCart      bool            `json:"inCart"`
	OwnBook     bool            `json:"ownBook"`
	CanPurchase bool            `json:"canPurchase"`
	BuiltIn     bool            `json:"builtIn"`
	Reviews     []domain.Review `json:"reviews"`
}

// CatalogService orchestrates catalog browsing and admin authoring.
type CatalogService struct {
	store     *store.Store
	reviews   *ReviewService
	search    *SearchService
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service. search may be nil.
func NewCatalogService(store *store.Store, reviews *ReviewService, search *SearchService, validator *validation.Validator, m *metrics.Metrics, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     store,
		reviews:   reviews,
		search:    search,
		validator: validator,
		metrics:   m,
		logger:    logger,
	}
}

// ListBooks returns the whole catalog, built-ins first.
func (s *CatalogService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.store.Catalog.ListAll(ctx)
}

// GetBookDetail resolves slug and computes the caller's relation to the book.
// Anonymous callers get all flags false and cannot purchase.
func (s *CatalogService) GetBookDetail(ctx context.Context, ident *domain.Identity, slug string) (*BookDetail, error) {
	book, err := s.store.Catalog.Find(ctx, slug)
	if err != nil {
		return nil, err
	}

	detail := &BookDetail{
		Book:    *book,
		BuiltIn: s.store.Catalog.IsBuiltIn(slug),
		OwnBook: ident.Owns(book),
		Reviews: s.reviews.ListForBook(ctx, slug),
	}

	if email := emailOf(ident); email != "" {
		if detail.Purchased, err = s.store.Ledger.HasPurchased(ctx, email, slug); err != nil {
			return nil, fmt.Errorf("check purchase: %w", err)
		}

		cart, err := s.store.Cart.List(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("list cart: %w", err)
		}
		for _, b := range cart {
			if b.Slug == slug {
				detail.InCart = true
				break
			}
		}

		detail.CanPurchase = !detail.OwnBook && !detail.Purchased
	}

	return detail, nil
}

// AddBook authors a custom book and its chapters. Only the admin may add.
func (s *CatalogService) AddBook(ctx context.Context, ident *domain.Identity, input AddBookInput) (*domain.Book, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}

	// Title and chapter text are stored as typed and clients escape them on
	// render. The slug comes from the untrimmed title.
	input.Author = strings.TrimSpace(input.Author)

	chapters := make([]domain.Chapter, len(input.Chapters))
	for i, ch := range input.Chapters {
		input.Chapters[i].Content = strings.TrimSpace(ch.Content)
		title := strings.TrimSpace(ch.Title)
		if title == "" {
			title = fmt.Sprintf("Chapter %d", i+1)
		}
		chapters[i] = domain.Chapter{Title: title, Content: input.Chapters[i].Content}
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	totalChapters := input.TotalChapters
	if len(chapters) > 0 {
		totalChapters = len(chapters)
	} else if totalChapters < 1 {
		return nil, domainerrors.ValidationWithDetails("please fill in all required fields",
			map[string]string{"totalChapters": "is required"})
	}

	newBook := store.NewBook{
		Title:         input.Title,
		Author:        input.Author,
		Price:         input.Price,
		Description:   orDefault(sanitize.Text(input.Description), DefaultDescription),
		CoverImage:    orDefault(strings.TrimSpace(input.CoverImage), DefaultCoverImage),
		CoverColor:    orDefault(strings.TrimSpace(input.CoverColor), DefaultCoverColor),
		AddedBy:       ident.Email,
		Tags:          sanitize.Texts(util.SplitTags(input.Tags)),
		TotalChapters: totalChapters,
	}

	slug := util.BookSlug(newBook.Title)
	s.warnOnShadowing(ctx, slug)

	book, err := s.store.Catalog.Add(ctx, newBook)
	if err != nil {
		return nil, err
	}

	if len(chapters) > 0 {
		if err := s.store.Content.SetAllChapters(ctx, book.Slug, chapters); err != nil {
			return nil, fmt.Errorf("save chapters: %w", err)
		}
	}

	s.reindex(ctx)
	s.metrics.BookAdded()
	s.logger.Info("book added",
		"slug", book.Slug,
		"title", book.Title,
		"chapters", book.TotalChapters,
		"added_by", book.AddedBy,
	)

	return book, nil
}

// DeleteBook removes a custom book and its content. The caller must be the
// admin who added it. Built-in books cannot be deleted.
func (s *CatalogService) DeleteBook(ctx context.Context, ident *domain.Identity, slug string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	if s.store.Catalog.IsBuiltIn(slug) {
		return ErrBuiltInBook
	}

	book, err := s.store.Catalog.Find(ctx, slug)
	if err != nil {
		return err
	}
	if !ident.Owns(book) {
		return ErrNotBookOwner
	}

	removed, err := s.store.Catalog.Remove(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.store.Content.DeleteBook(ctx, slug); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}

	s.reindex(ctx)
	s.metrics.BookDeleted()
	s.logger.Info("book deleted", "slug", slug, "removed", removed, "email", ident.Email)

	return nil
}

// warnOnShadowing logs when a new slug collides with an existing book.
// Adds are never rejected; lookups resolve built-ins first, then the
// earliest custom book.
func (s *CatalogService) warnOnShadowing(ctx context.Context, slug string) {
	if s.store.Catalog.IsBuiltIn(slug) {
		s.logger.Warn("new book is shadowed by a built-in book", "slug", slug)
		return
	}
	if _, err := s.store.Catalog.Find(ctx, slug); err == nil {
		s.logger.Warn("new book is shadowed by an existing custom book", "slug", slug)
	}
}

func (s *CatalogService) reindex(ctx context.Context) {
	if s.search == nil {
		return
	}
	if err := s.search.Reindex(ctx); err != nil {
		s.logger.Warn("failed to reindex catalog", "error", err)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sutapaslibrary/library-server/internal/search"
	"github.com/sutapaslibrary/library-server/internal/store"
)

// SearchService keeps the full-text index in step with the catalog and runs
// queries against it.
type SearchService struct {
	index  *search.SearchIndex
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search runs q against the catalog index.
func (s *SearchService) Search(ctx context.Context, q string, limit int) (*search.SearchResult, error) {
	return s.index.Search(ctx, q, limit)
}

// Reindex rebuilds the index from the current catalog. The catalog is small,
// so every add or delete rebuilds from scratch.
func (s *SearchService) Reindex(ctx context.Context) error {
	books, err := s.store.Catalog.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}

	if err := s.index.Rebuild(books); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	s.logger.Debug("search index rebuilt", "books", len(books))
	return nil
}

// DocumentCount returns the number of indexed books.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

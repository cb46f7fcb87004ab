package search

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/sutapaslibrary/library-server/internal/domain"
)

// SearchIndex wraps an in-memory Bleve index of the catalog.
//
// Thread safety: All public methods are safe for concurrent use.
// The mutex protects the index swap during Rebuild.
type SearchIndex struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewSearchIndex creates an empty in-memory index.
func NewSearchIndex(logger *slog.Logger) (*SearchIndex, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}

	return &SearchIndex{index: index, logger: logger}, nil
}

// Close closes the index.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Rebuild replaces the index contents with books. When several books share a
// slug only the first is indexed, matching catalog lookup order.
func (s *SearchIndex) Rebuild(books []domain.Book) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create search index: %w", err)
	}

	batch := fresh.NewBatch()
	seen := make(map[string]bool, len(books))
	for i := range books {
		b := &books[i]
		if seen[b.Slug] {
			continue
		}
		seen[b.Slug] = true
		if err := batch.Index(b.Slug, BookToDocument(b)); err != nil {
			_ = fresh.Close()
			return fmt.Errorf("index %s: %w", b.Slug, err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		_ = fresh.Close()
		return fmt.Errorf("execute batch: %w", err)
	}

	s.mu.Lock()
	old := s.index
	s.index = fresh
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		s.logger.Warn("failed to close previous search index", slog.String("error", err.Error()))
	}

	s.logger.Debug("search index rebuilt", slog.Int("documents", len(seen)))
	return nil
}

// DocumentCount returns the number of indexed documents.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

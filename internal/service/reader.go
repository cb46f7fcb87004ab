package service

import (
	"context"
	"fmt"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/store"
)

// PlaceholderContent is shown for chapters without text.
const PlaceholderContent = "Content not available for this chapter."

// ReaderPage is one chapter of a book as rendered by the reader.
type ReaderPage struct {
	Book        domain.Book `json:"book"`
	Index       int         `json:"index"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Available   bool        `json:"available"`
	PrevChapter *int        `json:"prevChapter"`
	NextChapter *int        `json:"nextChapter"`
}

// ReaderService serves chapter text.
type ReaderService struct {
	store *store.Store
}

// NewReaderService creates a new reader service.
func NewReaderService(store *store.Store) *ReaderService {
	return &ReaderService{store: store}
}

// Read returns chapter index of the book. Missing text, including indices
// outside the book's range, yields a placeholder page rather than an error.
// Only an unknown book is an error.
func (s *ReaderService) Read(ctx context.Context, slug string, index int) (*ReaderPage, error) {
	book, err := s.store.Catalog.Find(ctx, slug)
	if err != nil {
		return nil, err
	}

	page := &ReaderPage{
		Book:    *book,
		Index:   index,
		Title:   fmt.Sprintf("Chapter %d", index),
		Content: PlaceholderContent,
	}

	if book.HasChapter(index) {
		ch, ok, err := s.store.Content.GetChapter(ctx, slug, index)
		if err != nil {
			return nil, err
		}
		if ok {
			page.Available = true
			page.Content = ch.Content
			if ch.Title != "" {
				page.Title = ch.Title
			}
		}
	}

	if index > 1 {
		prev := min(index-1, book.TotalChapters)
		if prev >= 1 {
			page.PrevChapter = &prev
		}
	}
	if index < book.TotalChapters {
		next := max(index+1, 1)
		page.NextChapter = &next
	}

	return page, nil
}

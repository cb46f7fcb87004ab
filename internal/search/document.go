// Package search provides in-memory full-text search over the catalog using
// Bleve.
package search

import "github.com/sutapaslibrary/library-server/internal/domain"

// BookDocument is the indexed form of a catalog entry. The document ID is
// the slug.
type BookDocument struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Custom      bool     `json:"custom"`
}

// BookToDocument converts a catalog entry into a search document.
func BookToDocument(b *domain.Book) *BookDocument {
	return &BookDocument{
		Slug:        b.Slug,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Tags:        b.Tags,
		Custom:      b.AddedBy != "",
	}
}

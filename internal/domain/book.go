// Package domain contains the core business entities of the library storefront.
package domain

import "time"

// Book is a catalog entry. Cart entries and purchase records embed a full
// copy of it rather than referencing it by slug.
//
// Field names are camelCase so the persisted JSON matches the shapes written
// by the browser storefront.
type Book struct {
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	CoverImage    string    `json:"coverImage"`
	CoverColor    string    `json:"coverColor"`
	AddedBy       string    `json:"addedBy,omitempty"` // Email of the admin who authored a custom book
	Tags          []string  `json:"tags"`
	TotalChapters int       `json:"totalChapters"`
	Price         float64   `json:"price"`
}

// HasChapter reports whether index addresses a chapter within the book's
// declared range. Indices are 1-based.
func (b *Book) HasChapter(index int) bool {
	return index >= 1 && index <= b.TotalChapters
}

// Chapter is the readable text of one chapter, addressed by book slug and
// 1-based index.
type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PurchaseRecord is a denormalized copy of a purchased book stamped with the
// time of purchase.
type PurchaseRecord struct {
	Book
	PurchaseDate time.Time `json:"purchaseDate"`
}

// Review is a reader review of a book.
type Review struct {
	ID       string `json:"id"`
	BookSlug string `json:"bookSlug"`
	UserName string `json:"userName"`
	Date     string `json:"date"` // YYYY-MM-DD
	Content  string `json:"content"`
	Rating   int    `json:"rating"`
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns the built-in books followed by books added by the admin",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addBook",
		Method:        http.MethodPost,
		Path:          "/api/v1/books",
		Summary:       "Add book",
		Description:   "Adds a custom book with optional chapter text (admin only)",
		Tags:          []string{"Books"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{slug}",
		Summary:     "Get book",
		Description: "Returns a book with the caller's purchase and cart status and its reviews",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{slug}",
		Summary:     "Delete book",
		Description: "Deletes a custom book and its chapters (owning admin only)",
		Tags:        []string{"Books"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteBook)
}

// === DTOs ===

// ListBooksResponse contains the catalog.
type ListBooksResponse struct {
	Books []domain.Book `json:"books" doc:"Built-in books then custom books"`
	Total int           `json:"total" doc:"Number of books"`
}

// ListBooksOutput wraps the catalog for Huma.
type ListBooksOutput struct {
	Body ListBooksResponse
}

// ChapterRequest is one chapter of a book being added.
type ChapterRequest struct {
	Title   string `json:"title,omitempty" doc:"Chapter title, defaults to \"Chapter N\""`
	Content string `json:"content,omitempty" doc:"Chapter text"`
}

// AddBookRequest is the request body for adding a book. Required fields are
// checked by the service so all failures come back together.
type AddBookRequest struct {
	Title         string           `json:"title,omitempty" doc:"Book title"`
	Author        string           `json:"author,omitempty" doc:"Author name"`
	Description   string           `json:"description,omitempty" doc:"Short description"`
	Price         *float64         `json:"price,omitempty" doc:"Price in the store currency"`
	CoverImage    string           `json:"coverImage,omitempty" doc:"Cover image URL"`
	CoverColor    string           `json:"coverColor,omitempty" doc:"Cover gradient classes"`
	Tags          string           `json:"tags,omitempty" doc:"Comma-separated tags"`
	TotalChapters int              `json:"totalChapters,omitempty" doc:"Chapter count when no chapter text is given"`
	Chapters      []ChapterRequest `json:"chapters,omitempty" doc:"Chapter text in reading order"`
}

// AddBookInput wraps the add book request for Huma.
type AddBookInput struct {
	Body AddBookRequest
}

// BookOutput wraps a book for Huma.
type BookOutput struct {
	Body *domain.Book
}

// SlugInput addresses a book by slug.
type SlugInput struct {
	Slug string `path:"slug" doc:"Book slug"`
}

// BookDetailOutput wraps a book detail for Huma.
type BookDetailOutput struct {
	Body *service.BookDetail
}

// DeleteBookResponse confirms a deletion.
type DeleteBookResponse struct {
	Slug    string `json:"slug" doc:"Deleted book slug"`
	Deleted bool   `json:"deleted" doc:"Always true"`
}

// DeleteBookOutput wraps the deletion confirmation for Huma.
type DeleteBookOutput struct {
	Body DeleteBookResponse
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books, err := s.services.Catalog.ListBooks(ctx)
	if err != nil {
		return nil, s.mapError(ctx, "listBooks", err)
	}
	return &ListBooksOutput{Body: ListBooksResponse{Books: books, Total: len(books)}}, nil
}

func (s *Server) handleAddBook(ctx context.Context, input *AddBookInput) (*BookOutput, error) {
	req := input.Body
	chapters := make([]service.ChapterInput, len(req.Chapters))
	for i, ch := range req.Chapters {
		chapters[i] = service.ChapterInput{Title: ch.Title, Content: ch.Content}
	}

	book, err := s.services.Catalog.AddBook(ctx, IdentityFrom(ctx), service.AddBookInput{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Price:         req.Price,
		CoverImage:    req.CoverImage,
		CoverColor:    req.CoverColor,
		Tags:          req.Tags,
		TotalChapters: req.TotalChapters,
		Chapters:      chapters,
	})
	if err != nil {
		return nil, s.mapError(ctx, "addBook", err)
	}
	return &BookOutput{Body: book}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *SlugInput) (*BookDetailOutput, error) {
	detail, err := s.services.Catalog.GetBookDetail(ctx, IdentityFrom(ctx), input.Slug)
	if err != nil {
		return nil, s.mapError(ctx, "getBook", err)
	}
	return &BookDetailOutput{Body: detail}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *SlugInput) (*DeleteBookOutput, error) {
	if err := s.services.Catalog.DeleteBook(ctx, IdentityFrom(ctx), input.Slug); err != nil {
		return nil, s.mapError(ctx, "deleteBook", err)
	}
	return &DeleteBookOutput{Body: DeleteBookResponse{Slug: input.Slug, Deleted: true}}, nil
}

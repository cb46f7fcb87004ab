package api

import "github.com/sutapaslibrary/library-server/internal/service"

// Services groups all business logic services used by the API server.
type Services struct {
	Catalog  *service.CatalogService
	Reviews  *service.ReviewService
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Library  *service.LibraryService
	Reader   *service.ReaderService
	Search   *service.SearchService // optional
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/sutapaslibrary/library-server/internal/errors"
	"github.com/sutapaslibrary/library-server/internal/service"
	"github.com/sutapaslibrary/library-server/internal/sse"
)

func (s *Server) registerCartRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCart",
		Method:      http.MethodGet,
		Path:        "/api/v1/cart",
		Summary:     "Get cart",
		Description: "Returns the cart with its total",
		Tags:        []string{"Cart"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "addToCart",
		Method:      http.MethodPost,
		Path:        "/api/v1/cart",
		Summary:     "Add to cart",
		Description: "Adds a book to the cart. Adding a book already in the cart changes nothing.",
		Tags:        []string{"Cart"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddToCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFromCart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart/{slug}",
		Summary:     "Remove from cart",
		Description: "Removes a book from the cart",
		Tags:        []string{"Cart"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveFromCart)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearCart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart",
		Summary:     "Clear cart",
		Description: "Empties the cart",
		Tags:        []string{"Cart"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleClearCart)
}

// === DTOs ===

// CartOutput wraps the cart view for Huma.
type CartOutput struct {
	Body *service.CartView
}

// AddToCartInput wraps the add to cart request for Huma.
type AddToCartInput struct {
	Body struct {
		Slug string `json:"slug" minLength:"1" doc:"Book slug"`
	}
}

// === Handlers ===

func (s *Server) handleGetCart(ctx context.Context, _ *struct{}) (*CartOutput, error) {
	view, err := s.services.Cart.View(ctx, IdentityFrom(ctx))
	if err != nil {
		return nil, s.mapError(ctx, "getCart", err)
	}
	return &CartOutput{Body: view}, nil
}

func (s *Server) handleAddToCart(ctx context.Context, input *AddToCartInput) (*CartOutput, error) {
	view, err := s.services.Cart.Add(ctx, IdentityFrom(ctx), input.Body.Slug)
	if err != nil {
		return nil, s.mapError(ctx, "addToCart", err)
	}
	return &CartOutput{Body: view}, nil
}

func (s *Server) handleRemoveFromCart(ctx context.Context, input *SlugInput) (*CartOutput, error) {
	view, err := s.services.Cart.Remove(ctx, IdentityFrom(ctx), input.Slug)
	if err != nil {
		return nil, s.mapError(ctx, "removeFromCart", err)
	}
	return &CartOutput{Body: view}, nil
}

func (s *Server) handleClearCart(ctx context.Context, _ *struct{}) (*CartOutput, error) {
	ident := IdentityFrom(ctx)
	if err := s.services.Cart.Clear(ctx, ident); err != nil {
		return nil, s.mapError(ctx, "clearCart", err)
	}

	view, err := s.services.Cart.View(ctx, ident)
	if err != nil {
		return nil, s.mapError(ctx, "clearCart", err)
	}
	return &CartOutput{Body: view}, nil
}

// handleCartStream streams cart change signals for the caller's cart over
// Server-Sent Events. Clients re-read the cart on every signal.
func (s *Server) handleCartStream(w http.ResponseWriter, r *http.Request) {
	key, err := s.services.Cart.CartKey(IdentityFrom(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}

	sse.NewHandler(s.sseManager, func(*http.Request) string { return key }, s.logger).ServeHTTP(w, r)
}

// writeError writes an error envelope outside huma.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := ErrorEnvelope{Version: EnvelopeVersion, Error: "something went wrong, please try again"}

	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		status = domainErr.HTTPStatus()
		body.Error = domainErr.Message
		body.Code = string(domainErr.Code)
		body.Message = domainErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode error response", "error", err)
	}
}

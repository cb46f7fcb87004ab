package service

import (
	"context"
	"log/slog"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/metrics"
	"github.com/sutapaslibrary/library-server/internal/pricing"
	"github.com/sutapaslibrary/library-server/internal/store"
)

// CartView is the cart with its priced total.
type CartView struct {
	Items          []domain.Book `json:"items"`
	Count          int           `json:"count"`
	Total          float64       `json:"total"`
	FormattedTotal string        `json:"formattedTotal"`
	Currency       string        `json:"currency"`
}

// CartService orchestrates cart operations for the signed-in reader.
type CartService struct {
	store     *store.Store
	formatter *pricing.Formatter
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(store *store.Store, formatter *pricing.Formatter, m *metrics.Metrics, logger *slog.Logger) *CartService {
	return &CartService{
		store:     store,
		formatter: formatter,
		metrics:   m,
		logger:    logger,
	}
}

// CartKey returns the storage key of the cart the caller sees. With a
// global cart anonymous callers share it too; per-user carts need a sign-in.
func (s *CartService) CartKey(ident *domain.Identity) (string, error) {
	owner, err := s.owner(ident, false)
	if err != nil {
		return "", err
	}
	return s.store.Cart.Key(owner), nil
}

// View returns the caller's cart with totals.
func (s *CartService) View(ctx context.Context, ident *domain.Identity) (*CartView, error) {
	owner, err := s.owner(ident, false)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, owner)
}

// Add puts a copy of the book into the cart. Adding a book already in the
// cart changes nothing.
func (s *CartService) Add(ctx context.Context, ident *domain.Identity, slug string) (*CartView, error) {
	owner, err := s.owner(ident, true)
	if err != nil {
		return nil, err
	}

	book, err := s.store.Catalog.Find(ctx, slug)
	if err != nil {
		return nil, err
	}

	added, err := s.store.Cart.Add(ctx, owner, *book)
	if err != nil {
		return nil, err
	}
	if added {
		s.metrics.CartChanged("add")
		s.logger.Debug("added to cart", "slug", slug, "email", ident.Email)
	}

	return s.view(ctx, owner)
}

// Remove drops the book from the cart.
func (s *CartService) Remove(ctx context.Context, ident *domain.Identity, slug string) (*CartView, error) {
	owner, err := s.owner(ident, true)
	if err != nil {
		return nil, err
	}

	if err := s.store.Cart.Remove(ctx, owner, slug); err != nil {
		return nil, err
	}
	s.metrics.CartChanged("remove")

	return s.view(ctx, owner)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, ident *domain.Identity) error {
	owner, err := s.owner(ident, true)
	if err != nil {
		return err
	}

	if err := s.store.Cart.Clear(ctx, owner); err != nil {
		return err
	}
	s.metrics.CartChanged("clear")
	return nil
}

func (s *CartService) view(ctx context.Context, owner string) (*CartView, error) {
	items, err := s.store.Cart.List(ctx, owner)
	if err != nil {
		return nil, err
	}

	total := pricing.Total(items)
	return &CartView{
		Items:          items,
		Count:          len(items),
		Total:          total,
		FormattedTotal: s.formatter.Format(total),
		Currency:       s.formatter.Currency(),
	}, nil
}

// owner resolves whose cart the caller addresses. Writes always need a
// signed-in caller; reads only when carts are per user.
func (s *CartService) owner(ident *domain.Identity, write bool) (string, error) {
	if write || s.store.Cart.Scope() == store.CartScopeUser {
		if err := requireIdentity(ident); err != nil {
			return "", err
		}
	}
	return emailOf(ident), nil
}

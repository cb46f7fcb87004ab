package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/kv"
	"github.com/sutapaslibrary/library-server/internal/sse"
)

// CartScope selects how carts are keyed.
type CartScope string

const (
	// CartScopeGlobal keeps one cart shared by every identity.
	CartScopeGlobal CartScope = "global"
	// CartScopeUser keeps one cart per identity email.
	CartScopeUser CartScope = "user"
)

// ParseCartScope validates a configured scope name.
func ParseCartScope(s string) (CartScope, error) {
	switch CartScope(s) {
	case CartScopeGlobal, CartScopeUser:
		return CartScope(s), nil
	case "":
		return CartScopeGlobal, nil
	default:
		return "", fmt.Errorf("invalid cart scope %q (must be %s or %s)", s, CartScopeGlobal, CartScopeUser)
	}
}

// Cart stores denormalized book copies pending purchase. Every successful
// mutation emits a cart changed event.
type Cart struct {
	store   *Store
	emitter EventEmitter
	scope   CartScope
}

// Scope returns the configured cart scope.
func (c *Cart) Scope() CartScope {
	return c.scope
}

// Key returns the storage key of the cart owned by email. With the global
// scope every owner shares kv.KeyCart.
func (c *Cart) Key(owner string) string {
	if c.scope == CartScopeUser && owner != "" {
		return kv.UserCartKey(owner)
	}
	return kv.KeyCart
}

// List returns the cart entries in insertion order.
func (c *Cart) List(ctx context.Context, owner string) ([]domain.Book, error) {
	return c.store.readBooks(ctx, c.Key(owner))
}

// Add appends a copy of book unless an entry with the same slug exists.
// It reports whether the book was added.
func (c *Cart) Add(ctx context.Context, owner string, book domain.Book) (bool, error) {
	key := c.Key(owner)
	entries, err := c.store.readBooks(ctx, key)
	if err != nil {
		return false, err
	}
	if indexOfSlug(entries, book.Slug) >= 0 {
		return false, nil
	}

	book.Tags = slices.Clone(book.Tags)
	entries = append(entries, book)
	if err := c.store.writeJSON(ctx, key, entries); err != nil {
		return false, err
	}

	c.emitter.Emit(sse.NewCartChangedEvent(key))
	return true, nil
}

// Remove drops every entry with slug.
func (c *Cart) Remove(ctx context.Context, owner, slug string) error {
	key := c.Key(owner)
	entries, err := c.store.readBooks(ctx, key)
	if err != nil {
		return err
	}

	entries = slices.DeleteFunc(entries, func(b domain.Book) bool {
		return b.Slug == slug
	})
	if err := c.store.writeJSON(ctx, key, entries); err != nil {
		return err
	}

	c.emitter.Emit(sse.NewCartChangedEvent(key))
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context, owner string) error {
	key := c.Key(owner)
	if err := c.store.writeJSON(ctx, key, []domain.Book{}); err != nil {
		return err
	}

	c.emitter.Emit(sse.NewCartChangedEvent(key))
	return nil
}

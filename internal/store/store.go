// Package store implements the storefront's persisted stores over a flat
// key-value storage.
//
// Every operation is a synchronous read-modify-write of one key. There are
// no locks and no transactions: two concurrent writers to the same key race
// and the last writer wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/kv"
	"github.com/sutapaslibrary/library-server/internal/validation"
)

// EventEmitter is the interface for emitting SSE events.
// Store uses this to broadcast changes without depending on SSE implementation details.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// Options configures a Store.
type Options struct {
	Logger    *slog.Logger
	Emitter   EventEmitter
	Validator *validation.Validator
	// Now stamps createdAt and purchaseDate. Defaults to time.Now.
	Now func() time.Time
	// CartScope selects one shared cart or one cart per identity.
	CartScope CartScope
}

// Store bundles the catalog, content, cart and ledger stores that share one
// storage.
type Store struct {
	storage kv.Storage
	logger  *slog.Logger
	now     func() time.Time

	Catalog *Catalog
	Content *Content
	Cart    *Cart
	Ledger  *Ledger
}

// New creates the stores over storage.
func New(storage kv.Storage, opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Emitter == nil {
		opts.Emitter = NewNoopEmitter()
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CartScope == "" {
		opts.CartScope = CartScopeGlobal
	}

	s := &Store{
		storage: storage,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	s.Catalog = &Catalog{store: s, validator: opts.Validator}
	s.Content = &Content{store: s}
	s.Cart = &Cart{store: s, emitter: opts.Emitter, scope: opts.CartScope}
	s.Ledger = &Ledger{store: s}

	return s
}

// Storage returns the underlying key-value storage.
func (s *Store) Storage() kv.Storage {
	return s.storage
}

// readJSON decodes the value under key into a fresh T. An absent or
// malformed value yields the zero T and found=false; only storage failures
// are returned as errors. A value that parses but does not match T is
// malformed, and nothing decoded from it is returned.
func readJSON[T any](ctx context.Context, s *Store, key string) (T, bool, error) {
	var zero T

	raw, err := s.storage.Get(ctx, key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("read %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Debug("ignoring malformed persisted value",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return zero, false, nil
	}
	return v, true, nil
}

// writeJSON encodes v and stores it under key.
func (s *Store) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := s.storage.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	s.logger.Debug("persisted value written", slog.String("key", key), slog.Int("bytes", len(data)))
	return nil
}

// readBooks reads a JSON array of books, treating absent or malformed data
// as empty.
func (s *Store) readBooks(ctx context.Context, key string) ([]domain.Book, error) {
	books, _, err := readJSON[[]domain.Book](ctx, s, key)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return books, nil
}

func indexOfSlug(books []domain.Book, slug string) int {
	for i := range books {
		if books[i].Slug == slug {
			return i
		}
	}
	return -1
}

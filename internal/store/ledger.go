package store

import (
	"context"
	"log/slog"
	"slices"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/kv"
)

// Ledger stores each user's purchases under kv.PurchasedKey(email).
// Records are never removed.
type Ledger struct {
	store *Store
}

// ListPurchases returns the user's purchase records in purchase order.
func (l *Ledger) ListPurchases(ctx context.Context, email string) ([]domain.PurchaseRecord, error) {
	records, _, err := readJSON[[]domain.PurchaseRecord](ctx, l.store, kv.PurchasedKey(email))
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.PurchaseRecord{}
	}
	return records, nil
}

// HasPurchased reports whether the user owns a record for slug.
func (l *Ledger) HasPurchased(ctx context.Context, email, slug string) (bool, error) {
	records, err := l.ListPurchases(ctx, email)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(records, func(r domain.PurchaseRecord) bool {
		return r.Slug == slug
	}), nil
}

// RecordPurchase appends a record for each book whose slug is not yet in the
// user's ledger, all stamped with the same time. It returns the records that
// were added.
func (l *Ledger) RecordPurchase(ctx context.Context, email string, books []domain.Book) ([]domain.PurchaseRecord, error) {
	records, err := l.ListPurchases(ctx, email)
	if err != nil {
		return nil, err
	}

	now := l.store.now().UTC()
	var added []domain.PurchaseRecord
	for _, b := range books {
		owned := slices.ContainsFunc(records, func(r domain.PurchaseRecord) bool {
			return r.Slug == b.Slug
		})
		if owned {
			continue
		}
		b.Tags = slices.Clone(b.Tags)
		rec := domain.PurchaseRecord{Book: b, PurchaseDate: now}
		records = append(records, rec)
		added = append(added, rec)
	}

	if len(added) == 0 {
		return added, nil
	}

	if err := l.store.writeJSON(ctx, kv.PurchasedKey(email), records); err != nil {
		return nil, err
	}

	l.store.logger.Debug("purchases recorded",
		slog.String("email", email),
		slog.Int("added", len(added)),
		slog.Int("total", len(records)))

	return added, nil
}

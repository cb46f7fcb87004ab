package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/pricing"
	"github.com/sutapaslibrary/library-server/internal/store"
)

// Dashboard sizes.
const (
	recentPurchasesLimit = 5
	readingProgressLimit = 4
)

// Dashboard summarizes a reader's purchases.
type Dashboard struct {
	Identity        domain.Identity         `json:"identity"`
	IsAdmin         bool                    `json:"isAdmin"`
	TotalBooks      int                     `json:"totalBooks"`
	TotalSpent      float64                 `json:"totalSpent"`
	FormattedSpent  string                  `json:"formattedSpent"`
	RecentPurchases []domain.PurchaseRecord `json:"recentPurchases"`
	ReadingProgress []domain.PurchaseRecord `json:"readingProgress"`
}

// LibraryService exposes the reader's purchased books.
type LibraryService struct {
	store     *store.Store
	formatter *pricing.Formatter
	logger    *slog.Logger
}

// NewLibraryService creates a new library service.
func NewLibraryService(store *store.Store, formatter *pricing.Formatter, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:     store,
		formatter: formatter,
		logger:    logger,
	}
}

// Library returns the caller's purchases in purchase order.
func (s *LibraryService) Library(ctx context.Context, ident *domain.Identity) ([]domain.PurchaseRecord, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	return s.store.Ledger.ListPurchases(ctx, ident.Email)
}

// Dashboard returns purchase totals, the five newest purchases and the first
// four books for the "continue reading" shelf.
func (s *LibraryService) Dashboard(ctx context.Context, ident *domain.Identity) (*Dashboard, error) {
	records, err := s.Library(ctx, ident)
	if err != nil {
		return nil, err
	}

	recent := slices.Clone(records)
	slices.SortStableFunc(recent, func(a, b domain.PurchaseRecord) int {
		return cmp.Compare(b.PurchaseDate.UnixNano(), a.PurchaseDate.UnixNano())
	})
	recent = recent[:min(len(recent), recentPurchasesLimit)]

	spent := pricing.TotalPurchases(records)
	return &Dashboard{
		Identity:        *ident,
		IsAdmin:         ident.IsAdmin(),
		TotalBooks:      len(records),
		TotalSpent:      spent,
		FormattedSpent:  s.formatter.Format(spent),
		RecentPurchases: recent,
		ReadingProgress: slices.Clone(records[:min(len(records), readingProgressLimit)]),
	}, nil
}

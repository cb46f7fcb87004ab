package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/metrics"
	"github.com/sutapaslibrary/library-server/internal/sanitize"
	"github.com/sutapaslibrary/library-server/internal/seed"
	"github.com/sutapaslibrary/library-server/internal/store"
	"github.com/sutapaslibrary/library-server/internal/validation"
)

// DefaultRating is applied when a review is submitted without a rating.
const DefaultRating = 5

// SubmitReviewInput is a reader's review of a book.
type SubmitReviewInput struct {
	Content string `json:"content" validate:"notblank"`
	Rating  int    `json:"rating" validate:"gte=1,lte=5"`
}

// ReviewService holds reviews in process memory. The built-in reviews are
// loaded at startup; submitted reviews are lost on restart.
type ReviewService struct {
	mu      sync.RWMutex
	reviews []domain.Review // newest first

	store     *store.Store
	validator *validation.Validator
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewReviewService creates a review service seeded with the built-in reviews.
func NewReviewService(store *store.Store, validator *validation.Validator, m *metrics.Metrics, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		reviews:   seed.Reviews(),
		store:     store,
		validator: validator,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// ListForBook returns the reviews of a book, newest first. Unknown slugs
// simply have no reviews.
func (s *ReviewService) ListForBook(_ context.Context, slug string) []domain.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Review{}
	for _, r := range s.reviews {
		if r.BookSlug == slug {
			out = append(out, r)
		}
	}
	return out
}

// Submit adds a review by the signed-in reader. The book must exist.
func (s *ReviewService) Submit(ctx context.Context, ident *domain.Identity, slug string, input SubmitReviewInput) (*domain.Review, error) {
	if err := requireIdentity(ident); err != nil {
		return nil, err
	}
	if _, err := s.store.Catalog.Find(ctx, slug); err != nil {
		return nil, err
	}

	input.Content = sanitize.Text(input.Content)
	if input.Rating == 0 {
		input.Rating = DefaultRating
	}
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	review := domain.Review{
		ID:       uuid.NewString(),
		BookSlug: slug,
		UserName: ident.Name,
		Rating:   input.Rating,
		Date:     s.now().Format(time.DateOnly),
		Content:  input.Content,
	}

	s.mu.Lock()
	s.reviews = slices.Insert(s.reviews, 0, review)
	s.mu.Unlock()

	s.metrics.ReviewSubmitted()
	s.logger.Info("review submitted", "slug", slug, "rating", review.Rating, "email", ident.Email)

	return &review, nil
}

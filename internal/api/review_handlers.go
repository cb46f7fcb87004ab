package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/service"
)

func (s *Server) registerReviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{slug}/reviews",
		Summary:     "List reviews",
		Description: "Returns a book's reviews, newest first",
		Tags:        []string{"Reviews"},
	}, s.handleListReviews)

	huma.Register(s.api, huma.Operation{
		OperationID:   "submitReview",
		Method:        http.MethodPost,
		Path:          "/api/v1/books/{slug}/reviews",
		Summary:       "Submit review",
		Description:   "Adds a review by the signed-in reader. Reviews are kept in memory only.",
		Tags:          []string{"Reviews"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleSubmitReview)
}

// === DTOs ===

// ListReviewsOutput wraps a review list for Huma.
type ListReviewsOutput struct {
	Body struct {
		Reviews []domain.Review `json:"reviews" doc:"Reviews, newest first"`
	}
}

// SubmitReviewRequest is the request body for a review.
type SubmitReviewRequest struct {
	Content string `json:"content,omitempty" doc:"Review text"`
	Rating  int    `json:"rating,omitempty" doc:"Stars from 1 to 5, defaults to 5"`
}

// SubmitReviewInput wraps the review request for Huma.
type SubmitReviewInput struct {
	Slug string `path:"slug" doc:"Book slug"`
	Body SubmitReviewRequest
}

// ReviewOutput wraps a review for Huma.
type ReviewOutput struct {
	Body *domain.Review
}

// === Handlers ===

func (s *Server) handleListReviews(ctx context.Context, input *SlugInput) (*ListReviewsOutput, error) {
	if _, err := s.store.Catalog.Find(ctx, input.Slug); err != nil {
		return nil, s.mapError(ctx, "listReviews", err)
	}

	out := &ListReviewsOutput{}
	out.Body.Reviews = s.services.Reviews.ListForBook(ctx, input.Slug)
	return out, nil
}

func (s *Server) handleSubmitReview(ctx context.Context, input *SubmitReviewInput) (*ReviewOutput, error) {
	review, err := s.services.Reviews.Submit(ctx, IdentityFrom(ctx), input.Slug, service.SubmitReviewInput{
		Content: input.Body.Content,
		Rating:  input.Body.Rating,
	})
	if err != nil {
		return nil, s.mapError(ctx, "submitReview", err)
	}
	return &ReviewOutput{Body: review}, nil
}

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sutapaslibrary/library-server/internal/auth"
	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/service"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/session",
		Summary:     "Sign in",
		Description: "Issues a session token for an email and display name",
		Tags:        []string{"Session"},
		Middlewares: huma.Middlewares{s.rateLimit(s.sessionLimiter)},
	}, s.handleCreateSession)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/v1/session",
		Summary:     "Current identity",
		Description: "Returns the identity behind the bearer token",
		Tags:        []string{"Session"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSession)
}

// === DTOs ===

// CreateSessionRequest is the request body for signing in.
type CreateSessionRequest struct {
	Email string `json:"email" format:"email" maxLength:"254" doc:"Reader email"`
	Name  string `json:"name,omitempty" maxLength:"100" doc:"Display name, defaults to the email local part"`
}

// CreateSessionInput wraps the sign-in request for Huma.
type CreateSessionInput struct {
	Body CreateSessionRequest
}

// SessionOutput wraps an issued session for Huma.
type SessionOutput struct {
	Body *auth.Session
}

// IdentityOutput wraps the current identity for Huma.
type IdentityOutput struct {
	Body *domain.Identity
}

// === Handlers ===

func (s *Server) handleCreateSession(ctx context.Context, input *CreateSessionInput) (*SessionOutput, error) {
	session, err := s.provider.SignIn(strings.TrimSpace(input.Body.Email), strings.TrimSpace(input.Body.Name))
	if err != nil {
		return nil, s.mapError(ctx, "createSession", err)
	}

	s.logger.Info("session issued",
		"email", session.Identity.Email,
		"role", session.Identity.Role,
	)
	return &SessionOutput{Body: session}, nil
}

func (s *Server) handleGetSession(ctx context.Context, _ *struct{}) (*IdentityOutput, error) {
	ident := IdentityFrom(ctx)
	if ident == nil {
		return nil, s.mapError(ctx, "getSession", service.ErrSignInRequired)
	}
	return &IdentityOutput{Body: ident}, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sutapaslibrary/library-server/internal/domain"
	"github.com/sutapaslibrary/library-server/internal/service"
)

func (s *Server) registerLibraryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getLibrary",
		Method:      http.MethodGet,
		Path:        "/api/v1/library",
		Summary:     "My library",
		Description: "Returns the caller's purchased books in purchase order",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetLibrary)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDashboard",
		Method:      http.MethodGet,
		Path:        "/api/v1/dashboard",
		Summary:     "Dashboard",
		Description: "Returns purchase totals, recent purchases and the reading shelf",
		Tags:        []string{"Library"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetDashboard)
}

// LibraryOutput wraps the purchase list for Huma.
type LibraryOutput struct {
	Body struct {
		Books []domain.PurchaseRecord `json:"books" doc:"Purchased books"`
	}
}

// DashboardOutput wraps the dashboard for Huma.
type DashboardOutput struct {
	Body *service.Dashboard
}

func (s *Server) handleGetLibrary(ctx context.Context, _ *struct{}) (*LibraryOutput, error) {
	records, err := s.services.Library.Library(ctx, IdentityFrom(ctx))
	if err != nil {
		return nil, s.mapError(ctx, "getLibrary", err)
	}

	out := &LibraryOutput{}
	out.Body.Books = records
	return out, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
	dashboard, err := s.services.Library.Dashboard(ctx, IdentityFrom(ctx))
	if err != nil {
		return nil, s.mapError(ctx, "getDashboard", err)
	}
	return &DashboardOutput{Body: dashboard}, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/sutapaslibrary/library-server/internal/service"
)

func (s *Server) registerReaderRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "readChapter",
		Method:      http.MethodGet,
		Path:        "/api/v1/read/{slug}/{chapter}",
		Summary:     "Read chapter",
		Description: "Returns chapter text, or a placeholder when the chapter has none",
		Tags:        []string{"Reader"},
	}, s.handleReadChapter)
}

// ReadChapterInput addresses one chapter.
type ReadChapterInput struct {
	Slug    string `path:"slug" doc:"Book slug"`
	Chapter int    `path:"chapter" doc:"1-based chapter index"`
}

// ReaderOutput wraps a reader page for Huma.
type ReaderOutput struct {
	Body *service.ReaderPage
}

func (s *Server) handleReadChapter(ctx context.Context, input *ReadChapterInput) (*ReaderOutput, error) {
	page, err := s.services.Reader.Read(ctx, input.Slug, input.Chapter)
	if err != nil {
		return nil, s.mapError(ctx, "readChapter", err)
	}
	return &ReaderOutput{Body: page}, nil
}

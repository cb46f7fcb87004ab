package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/sutapaslibrary/library-server/internal/logger"
	"github.com/sutapaslibrary/library-server/internal/search"
	"github.com/sutapaslibrary/library-server/internal/service"
	"github.com/sutapaslibrary/library-server/internal/store"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory Bleve index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(log.Logger)
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(indexHandle.SearchIndex, st, log.Logger), nil
}

// ReindexCatalog builds the index from the current catalog. The index lives
// in memory so this runs on every start.
func ReindexCatalog(i do.Injector) error {
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := searchService.Reindex(context.Background()); err != nil {
		return err
	}

	count, _ := searchService.DocumentCount()
	log.Info("Search index built", "documents", count)
	return nil
}

package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// SearchResult represents the search results.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"tookMs"`
	Hits   []SearchHit `json:"hits"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	Slug       string            `json:"slug"`
	Title      string            `json:"title"`
	Author     string            `json:"author"`
	Score      float64           `json:"score"`
	Custom     bool              `json:"custom"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search matches q against title, author, description and tags. An empty
// query returns no hits.
func (s *SearchIndex) Search(ctx context.Context, q string, limit int) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	result := &SearchResult{Query: q, Hits: []SearchHit{}}
	if q == "" {
		return result, nil
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(q), limit, 0, false)
	searchRequest.Fields = []string{"slug", "title", "author", "custom"}
	searchRequest.Highlight = bleve.NewHighlight()
	searchRequest.Highlight.AddField("title")
	searchRequest.Highlight.AddField("author")

	s.mu.RLock()
	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result.Total = searchResult.Total
	result.TookMs = searchResult.Took.Milliseconds()

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			Slug:  hit.ID,
			Score: hit.Score,
		}
		if t, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = t
		}
		if a, ok := hit.Fields["author"].(string); ok {
			searchHit.Author = a
		}
		if c, ok := hit.Fields["custom"].(bool); ok {
			searchHit.Custom = c
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// buildSearchQuery weights title matches highest, then author and tags.
func buildSearchQuery(q string) query.Query {
	titleMatch := bleve.NewMatchQuery(q)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)

	authorMatch := bleve.NewMatchQuery(q)
	authorMatch.SetField("author")
	authorMatch.SetBoost(2.0)

	tagsMatch := bleve.NewMatchQuery(q)
	tagsMatch.SetField("tags")
	tagsMatch.SetBoost(1.5)

	descMatch := bleve.NewMatchQuery(q)
	descMatch.SetField("description")

	// Typo tolerance on single-word title queries.
	queries := []query.Query{titleMatch, authorMatch, tagsMatch, descMatch}
	if !strings.Contains(q, " ") {
		fuzzy := bleve.NewFuzzyQuery(strings.ToLower(q))
		fuzzy.SetField("title")
		fuzzy.SetFuzziness(1)
		fuzzy.SetBoost(0.5)
		queries = append(queries, fuzzy)
	}

	return bleve.NewDisjunctionQuery(queries...)
}

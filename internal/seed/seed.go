// Package seed holds the built-in catalog, chapter text and reviews that ship
// with the storefront. The data is read-only at runtime.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/sutapaslibrary/library-server/internal/domain"
)

//go:embed data/*.json
var files embed.FS

type data struct {
	books   []domain.Book
	content map[string]map[string]domain.Chapter
	reviews []domain.Review
}

var load = sync.OnceValue(func() *data {
	d := &data{}
	mustDecode("data/books.json", &d.books)
	mustDecode("data/content.json", &d.content)
	mustDecode("data/reviews.json", &d.reviews)
	return d
})

func mustDecode(name string, v any) {
	raw, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("seed: read %s: %v", name, err))
	}
	if err := json.Unmarshal(raw, v); err != nil {
		panic(fmt.Sprintf("seed: decode %s: %v", name, err))
	}
}

// Books returns a copy of the built-in catalog in its shipped order.
func Books() []domain.Book {
	src := load().books
	out := make([]domain.Book, len(src))
	for i, b := range src {
		b.Tags = slices.Clone(b.Tags)
		out[i] = b
	}
	return out
}

// Chapter returns the built-in text of a chapter, if any.
func Chapter(slug string, index int) (domain.Chapter, bool) {
	chapters, ok := load().content[slug]
	if !ok {
		return domain.Chapter{}, false
	}
	ch, ok := chapters[strconv.Itoa(index)]
	return ch, ok
}

// Reviews returns a copy of the built-in reviews.
func Reviews() []domain.Review {
	return slices.Clone(load().reviews)
}

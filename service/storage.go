package service

import (
	"context"
	"github.com/gissleh/poet"
)

type PoemStorage interface {
	FindPoem(ctx context.Context, id string) (*poet.Poem, error)
	ListPoems(ctx context.Context) ([]poet.Poem, error)
	ListPoemsByAuthor(ctx context.Context, author string) ([]poet.Poem, error)
	ListPoemsByForm(ctx context.Context, form string) ([]poet.Poem, error)
	SavePoem(ctx context.Context, poem poet.Poem) error
	DeletePoem(ctx context.Context, poem poet.Poem) error
}

// Fallback finds pronunciations for words that are not in the dictionary. It returns nil, nil when
// it has none.
type Fallback interface {
	FetchEntry(ctx context.Context, word string) (*poet.Entry, error)
}

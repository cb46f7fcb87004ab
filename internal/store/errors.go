package store

import domainerrors "github.com/sutapaslibrary/library-server/internal/errors"

// ErrBookNotFound is returned when no built-in or custom book has the slug.
var ErrBookNotFound = domainerrors.NotFound("book not found")

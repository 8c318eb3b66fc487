package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("registro não encontrado")

	// ErrCursorNotFound means the pagination cursor no longer resolves to a
	// document (deleted between pages). Callers return an empty page.
	ErrCursorNotFound = errors.New("cursor não encontrado")

	// ErrFeaturedLimit means flipping destaque on would exceed the cap.
	ErrFeaturedLimit = errors.New("máximo de itens em destaque atingido")
)

// IndexRequiredError wraps a store error that indicates the query could not
// be served without an index, with a hint at the remediation.
type IndexRequiredError struct {
	Hint string
	Err  error
}

func (e *IndexRequiredError) Error() string {
	return "Índice necessário: " + e.Hint
}

func (e *IndexRequiredError) Unwrap() error { return e.Err }

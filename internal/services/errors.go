package services

import "errors"

// Store-layer errors. Handlers map these onto HTTP status codes; the
// path-level authorization rules surface as ErrForbidden.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
	ErrInvalid   = errors.New("invalid value")
)

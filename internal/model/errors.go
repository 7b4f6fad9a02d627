package model

import "errors"

var (
	// ErrNotFound: the named day (or, where it matters, visit) does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation: a required field was empty; nothing was mutated.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate: the visit identifier already exists in the day.
	// AddVisit treats this as an idempotent no-op; the UI uses it to keep
	// already-added catalog entries disabled.
	ErrDuplicate = errors.New("duplicate visit")
	// ErrReadOnlyField: the edit touched a field that is sourced from the
	// catalog for this visit (name/city/coordinates on a catalog-backed visit).
	ErrReadOnlyField = errors.New("field is read-only for catalog-backed visits")
	// ErrBadIndex: a move index fell outside the day's sequence.
	ErrBadIndex = errors.New("index out of range")
)

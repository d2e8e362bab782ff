package repository

import (
	"errors"

	"github.com/alexanderramin/prodsched/internal/db"
)

var (
	// ErrNotFound is returned when a lookup or write targets a missing row.
	ErrNotFound = errors.New("not found")

	// ErrConcurrencyConflict is returned when a versioned update finds the
	// row changed since it was read, or a write lost a lock race. Callers
	// should reload and retry.
	ErrConcurrencyConflict = db.ErrConcurrencyConflict
)

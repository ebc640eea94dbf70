package repository

import "errors"

var (
	// ErrDuplicateKey is returned when a write violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotFound is returned by writes that address a missing row.
	ErrNotFound = errors.New("record not found")
)

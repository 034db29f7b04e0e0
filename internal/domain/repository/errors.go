package repository

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness
	// constraint (duplicate email, second active subscription).
	ErrConflict = errors.New("conflict")
)

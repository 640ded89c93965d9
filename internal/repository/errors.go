// Package repository provides persistence for the sandbox record service:
// PostgreSQL implementations and an in-memory store with the same behaviour.
package repository

import "errors"

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique key already exists.
	ErrConflict = errors.New("already exists")
)

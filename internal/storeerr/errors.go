// Package storeerr defines the error taxonomy shared by every store. Handlers
// map these to HTTP status codes with errors.Is; stores wrap them with context.
package storeerr

import "errors"

var (
	// ErrInvalidOperation marks a malformed or self-referential request,
	// e.g. a self-follow or a reply whose parent lives on another post.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrConflict marks a duplicate of a uniquely-constrained relation,
	// e.g. a second friend request or a second save of the same post.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized marks an actor lacking rights over the target entity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks an absent or already-resolved referenced entity.
	ErrNotFound = errors.New("not found")
)

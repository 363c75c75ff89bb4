package repository

import "errors"

// Sentinel errors surfaced by repositories. Services translate these into the
// HTTP-aware error taxonomy; routine absence stays a sentinel, not a panic or
// a typed API error.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("conflicting record exists")
)

// errUnchanged is returned from an Update closure to skip persisting when the
// mutation turned out to be a no-op.
var errUnchanged = errors.New("state unchanged")

// Package repository provides PostgreSQL persistence for users, sessions,
// and the per-user namespace tree of folders and phews.
package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Expected persistence outcomes. Services and handlers distinguish these
// from storage faults with errors.Is; anything else is an internal fault.
var (
	// ErrNotFound means no row matched the lookup.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a node already occupies the target path.
	ErrConflict = errors.New("conflict")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, which is how concurrent creates against the same path lose
// the race.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

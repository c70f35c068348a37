// Package repository defines error types that are reused across
// repositories.  These sentinel values let handlers distinguish
// failure scenarios without string matching: ErrConflict maps to an
// HTTP 409 (for example advancing a registration flow out of order),
// and repositories return sql.ErrNoRows or missions.ErrNotFound for
// missing rows.  Ownership is enforced by scoping queries to the
// caller's user id, so "not yours" surfaces as not-found rather than
// as a separate sentinel.
package repository

import "errors"

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as a registration flow transition that
// skips a step.
var ErrConflict = errors.New("conflict")

// Package repository defines the storage contracts used by the service
// layer, the sentinel errors every store returns, and the MySQL-backed
// implementation.  The document store lives in mongostore and an
// in-process store in memstore; all three satisfy the same interfaces so
// services never see driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when the addressed record does not exist.
// Services translate it into a not-found error (HTTP 404).
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness rule,
// such as a second account with the same email or a second review of
// the same property by the same user.  Services translate it into a
// conflict (HTTP 409).
var ErrDuplicate = errors.New("duplicate")

// ErrConflict is returned when a conditional update finds the record in
// an unexpected state, e.g. cancelling a booking that is no longer
// confirmed.
var ErrConflict = errors.New("conflict")

// ResolveUpdate classifies a conditional update that touched n records.
// It returns nil when the update applied.  Otherwise exists is consulted
// and the result is ErrNotFound for a missing record or ErrConflict for
// one in another state.
func ResolveUpdate(n int64, exists func() (bool, error)) error {
    if n > 0 {
        return nil
    }
    found, err := exists()
    if err != nil {
        return err
    }
    if !found {
        return ErrNotFound
    }
    return ErrConflict
}

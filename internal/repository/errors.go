// Package repository defines error values shared across repositories.
// These sentinels let handlers distinguish failure scenarios: ErrForbidden
// means the caller does not own the resource (HTTP 403), ErrConflict means
// an operation cannot proceed because of existing state (HTTP 409).
package repository

import (
    "errors"
    "strings"
)

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by someone else.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because of
// conflicting state, such as changing the status of a delivered order.
var ErrConflict = errors.New("conflict")

// isDuplicate reports whether err is a unique-constraint violation.  MySQL
// surfaces these as error 1062; SQLite (used by the test suite) reports
// "UNIQUE constraint failed".
func isDuplicate(err error) bool {
    if err == nil {
        return false
    }
    msg := strings.ToLower(err.Error())
    return strings.Contains(msg, "1062") || strings.Contains(msg, "unique constraint")
}

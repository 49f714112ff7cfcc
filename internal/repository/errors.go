// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish failure
// scenarios without inspecting driver errors: ErrConflict signals that a
// write collides with existing state (e.g. a second best deal for the same
// date), and the per-entity not-found sentinels map to HTTP 404 responses.
package repository

import "errors"

// ErrConflict is returned when an insert cannot proceed because an
// equivalent record already exists. Handlers should translate this
// into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

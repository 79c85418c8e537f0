package repository

import "errors"

// ErrNotFound is returned when a lookup by identifier matches no row.
// Handlers map it to a distinct 404 state.
var ErrNotFound = errors.New("record not found")

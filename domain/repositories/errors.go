package repositories

import "errors"

// ErrNotFound is returned when no row matches the owner-scoped filter.
// A missing row and a row owned by someone else are indistinguishable.
var ErrNotFound = errors.New("record not found")

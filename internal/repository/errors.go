package repository

import "errors"

// ErrNotFound is returned when a query matches no rows.
var ErrNotFound = errors.New("record not found")

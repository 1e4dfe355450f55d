package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the database.
var ErrNotFound = errors.New("not found")

// ErrInvalidCursor is returned when a pagination cursor cannot be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// ErrDuplicateSlug is returned when a post slug collides with an existing one.
var ErrDuplicateSlug = errors.New("duplicate slug")

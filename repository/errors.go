package repository

import "errors"

// ErrNotFound is returned when a lookup, update or delete matches no
// document. Owner-scoped note operations return it for foreign ids too.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when a user insert collides with the
// unique email index.
var ErrDuplicateEmail = errors.New("email already exists")

package repository

import "errors"

// ErrNotFound indicates an entity was not located.
var ErrNotFound = errors.New("repository: not found")

// ErrDuplicateEmail indicates the unique email constraint rejected an
// insert.
var ErrDuplicateEmail = errors.New("repository: duplicate email")

// ErrInvalidUser indicates a user record is missing a required field.
var ErrInvalidUser = errors.New("repository: invalid user record")

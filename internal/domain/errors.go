package domain

import "errors"

// Terminal outcomes of the register and login flows. The HTTP layer owns
// the status code and client message for each.
var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmailTaken       = errors.New("email already in use")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidPassword  = errors.New("invalid password")
)

// MissingFieldError reports the first required field absent from a request,
// in the order the flow checks them.
type MissingFieldError struct {
	// Label is the client-facing field name, e.g. "Password confirmation".
	Label string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Label
}

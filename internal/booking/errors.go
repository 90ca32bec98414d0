package booking

import "errors"

// ErrForbidden means the caller's role does not permit the operation.
var ErrForbidden = errors.New("operation not permitted for this role")

// ValidationError names the required field that was missing or empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

package errors

import (
	"errors"
	"fmt"
)

// Common error types for the login gateway
var (
	// Callback input errors
	ErrMissingCallbackParams = errors.New("missing state or code parameter")

	// Authentication errors
	ErrInvalidState   = errors.New("invalid state")
	ErrMissingSubject = errors.New("access token has no subject claim")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

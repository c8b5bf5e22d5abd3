package usecase

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a requested file or asset that does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError covers the client-error taxonomy: missing required
// fields, unrecognized weapon keys, unrecognized asset types and missing
// boundary tokens. It is always returned before any filesystem mutation.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}

package pool

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("operation not allowed")
	ErrBadCredential     = errors.New("invalid credential")
	ErrExpiredCredential = errors.New("credential expired")
)

// ValidationError reports the first violated invariant of a request.
// Violations are not aggregated; the first one found wins.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Invalid(reason string) error {
	return &ValidationError{Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

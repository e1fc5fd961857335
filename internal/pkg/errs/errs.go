package errs

import (
	"errors"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark tags err with a sentinel while keeping the original cause and
// stack. The sentinel is matchable through plain errors.Is: the
// library's mark lives outside the Unwrap chain, so Mark adds a thin
// wrapper that answers for it.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return &markedError{cause: cr.Mark(err, markErr), sentinel: markErr}
}

type markedError struct {
	cause    error
	sentinel error
}

func (e *markedError) Error() string { return e.cause.Error() }
func (e *markedError) Unwrap() error { return e.cause }

func (e *markedError) Is(target error) bool {
	return errors.Is(e.sentinel, target)
}

// Is reports whether err matches target, honoring marks from Mark in
// addition to the regular Unwrap chain.
func Is(err, target error) bool {
	return cr.Is(err, target)
}

// As finds the first error in err's chain assignable to target.
func As(err error, target any) bool {
	return cr.As(err, target)
}

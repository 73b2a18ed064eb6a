package rng

import (
	"github.com/pkg/errors"
)

// ErrInvalidBound is returned when a bounded draw is requested with a zero
// bound. There is no valid output range, so it is rejected before any bytes
// are read from the source.
var ErrInvalidBound = errors.New("bound must be greater than zero")

// SourceError wraps a failed read from the entropy source. It is a distinct
// kind from validation failures like ErrInvalidBound so callers can decide
// whether to retry or fail over.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return "error fetching random bytes: " + e.Err.Error()
}

func (e *SourceError) Unwrap() error { return e.Err }

// IsSourceError reports whether err came from the entropy source rather than
// from input validation.
func IsSourceError(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}

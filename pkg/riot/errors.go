package riot

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the upstream explicitly answers 404.
var ErrNotFound = errors.New("riot: not found")

// TransientError covers every other failure: network errors, rate limiting, 5xx and
// undecodable bodies.
type TransientError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("riot: %s answered %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("riot: %s: %v", e.Endpoint, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

package utils

import (
	"errors"
	"fmt"
)

// BackendError is a domain error reported by the backend in the "error"
// field of its JSON response, such as an unknown city.
type BackendError struct {
	Message    string
	StatusCode int
}

func (e *BackendError) Error() string {
	return e.Message
}

// AsBackendError reports whether err carries a backend-reported message.
func AsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status: %d", e.StatusCode)
}

package news

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnexpectedPayload marks a response body that could not be decoded
var ErrUnexpectedPayload = errors.New("unexpected payload")

// StatusError is returned for non-2xx upstream responses
type StatusError struct {
	Provider string
	Body     string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP error %d: %s", e.Provider, e.Code, e.Body)
}

// Retryable reports whether repeating the request may succeed
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

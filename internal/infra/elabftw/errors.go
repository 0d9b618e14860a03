package elabftw

import "fmt"

// StatusError is returned when the eLabFTW server answered with a non-2xx
// status. Body holds a bounded capture of the response body for reporting.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("elabftw: status %d: %s", e.StatusCode, e.Body)
}

// TransportError is returned when a request could not complete at all:
// DNS failure, connection refused, TLS handshake failure, timeout.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("elabftw: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

package remote

import (
	"errors"
	"fmt"
)

// TransportError is a failure before a structured response was obtained:
// connection, timeout, or an undecodable body. The executor retries it.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError is a structured rejection returned by the service. It is
// surfaced verbatim and never retried.
type ApplicationError struct {
	Op      string
	Status  int
	Code    string
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s: %s (%d): %s", e.Op, e.Code, e.Status, e.Message)
}

// ResponseError is the wire shape of a non-2xx body.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// AsApplication extracts an application error from err.
func AsApplication(err error) (*ApplicationError, bool) {
	var ae *ApplicationError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

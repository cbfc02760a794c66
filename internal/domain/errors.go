package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport signals a connection failure or timeout talking to the engine.
	ErrTransport = errors.New("transport error")
	// ErrRequestFailed signals a non-2xx response from the engine.
	ErrRequestFailed = errors.New("request failed")
	// ErrInvalidArgument signals contradictory or missing caller arguments.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrEncoding signals a value that has no wire-text form.
	ErrEncoding = errors.New("encoding error")
	// ErrDecoding signals a response body that is not the expected JSON.
	ErrDecoding = errors.New("decoding error")
	// ErrUnsupportedOperation signals an operation the client refuses to perform.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)

// TransportError wraps ErrTransport with the target URL and the underlying cause.
type TransportError struct {
	URL     string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("Connection to server '%s' timed out: %v", e.URL, e.Err)
	}
	return fmt.Sprintf(
		"Failed to connect to server at '%s', are you sure that URL is correct? "+
			"Checking it in a browser might help: %v",
		e.URL, e.Err,
	)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// RequestFailedError wraps ErrRequestFailed with the status code and the
// extracted reason. Error returns the reason verbatim.
type RequestFailedError struct {
	StatusCode int
	Message    string
}

func (e *RequestFailedError) Error() string { return e.Message }

func (e *RequestFailedError) Unwrap() error { return ErrRequestFailed }

// EncodingError wraps ErrEncoding with the offending value.
type EncodingError struct {
	Value any
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: cannot render %T as wire text", ErrEncoding.Error(), e.Value)
}

func (e *EncodingError) Unwrap() error { return ErrEncoding }

// DecodingError wraps ErrDecoding with the parser error.
type DecodingError struct {
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("%s: %v", ErrDecoding.Error(), e.Err)
}

func (e *DecodingError) Unwrap() []error { return []error{ErrDecoding, e.Err} }

// NewInvalidArgument creates an ErrInvalidArgument error with a message.
func NewInvalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

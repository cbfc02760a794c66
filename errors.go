package solr

import "github.com/kailas-cloud/solr/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrTransport            = domain.ErrTransport
	ErrRequestFailed        = domain.ErrRequestFailed
	ErrInvalidArgument      = domain.ErrInvalidArgument
	ErrEncoding             = domain.ErrEncoding
	ErrDecoding             = domain.ErrDecoding
	ErrUnsupportedOperation = domain.ErrUnsupportedOperation
)

// Typed errors. Use errors.As() to inspect them.
type (
	// TransportError reports a connection failure or timeout with the target URL.
	TransportError = domain.TransportError
	// RequestFailedError reports a non-2xx response; Error returns the
	// extracted reason.
	RequestFailedError = domain.RequestFailedError
	// EncodingError reports a field value with no wire-text form.
	EncodingError = domain.EncodingError
	// DecodingError reports a response body that is not the expected JSON.
	DecodingError = domain.DecodingError
)

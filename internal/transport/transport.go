//go:generate mockgen -source=transport.go -destination=transportmock/transport.go -package=transportmock

// Package transport defines the HTTP round trip the client is built on.
package transport

import (
	"context"
	"net/http"
)

// Request is one outgoing HTTP request. Body may be nil.
type Request struct {
	Method string
	URL    string
	Body   []byte
	Header http.Header
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs one HTTP round trip.
//
// Send returns an error only when no response was received. Timeouts are
// reported as errors satisfying net.Error.Timeout() or wrapping
// context.DeadlineExceeded. Non-2xx responses are not errors at this level.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Response, error)
}

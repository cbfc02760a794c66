package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// codeError labels round trips that produced no response.
const codeError = "error"

// RoundTripper records request count and duration for every round trip made
// through next. A nil m returns next unchanged.
func RoundTripper(next http.RoundTripper, m *Metrics) http.RoundTripper {
	if m == nil {
		return next
	}
	if next == nil {
		next = http.DefaultTransport
	}
	return &instrumented{next: next, m: m}
}

type instrumented struct {
	next http.RoundTripper
	m    *Metrics
}

func (t *instrumented) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(r)

	code := codeError
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	t.m.HTTPRequests.WithLabelValues(r.Method, code).Inc()
	t.m.HTTPDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())

	return resp, err //nolint:wrapcheck // delegating to the wrapped RoundTripper
}

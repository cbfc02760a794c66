// Package httptransport sends engine requests with net/http.
package httptransport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kailas-cloud/solr/internal/metrics"
	"github.com/kailas-cloud/solr/internal/transport"
	"github.com/kailas-cloud/solr/internal/version"
)

// DefaultTimeout bounds one round trip when no client is supplied.
const DefaultTimeout = 60 * time.Second

// Transport implements transport.Transport over an *http.Client.
type Transport struct {
	client    *http.Client
	userAgent string
}

// Config holds the transport settings. All fields are optional.
type Config struct {
	// Client replaces the default client. Its Timeout is kept as is.
	Client *http.Client
	// Timeout applies to the default client; zero means DefaultTimeout.
	Timeout   time.Duration
	UserAgent string
	Metrics   *metrics.Metrics
}

// New creates a Transport.
func New(cfg Config) *Transport {
	var client http.Client
	if cfg.Client != nil {
		client = *cfg.Client
	} else {
		client.Timeout = cfg.Timeout
		if client.Timeout <= 0 {
			client.Timeout = DefaultTimeout
		}
	}
	client.Transport = metrics.RoundTripper(client.Transport, cfg.Metrics)

	ua := cfg.UserAgent
	if ua == "" {
		ua = version.UserAgent()
	}
	return &Transport{client: &client, userAgent: ua}
}

// Send implements transport.Transport.
func (t *Transport) Send(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	var body io.Reader = http.NoBody
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", t.userAgent)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, err //nolint:wrapcheck // *url.Error already names method and URL
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &transport.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

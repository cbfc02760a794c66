package solr

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a Client or a CoreAdmin.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type registeredStrategy struct {
	signature string
	strategy  ErrorStrategy
}

type clientConfig struct {
	transport  Transport
	httpClient *http.Client
	timeout    time.Duration

	maxQueryLength int
	strategies     []registeredStrategy
	adminURL       string

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithTransport replaces the HTTP transport. WithHTTPClient, WithTimeout and
// the HTTP metrics of WithPrometheus do not apply to a custom transport.
func WithTransport(t Transport) Option {
	return optionFunc(func(c *clientConfig) {
		c.transport = t
	})
}

// WithHTTPClient sends requests through the given client. Its own Timeout is
// used as is.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout bounds each round trip. Default: 60s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithMaxQueryLength sets the encoded query size at which searches switch
// from GET to POST. Default: 1024.
func WithMaxQueryLength(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxQueryLength = n
	})
}

// WithErrorStrategy teaches the client to read error pages from servers whose
// Server header contains signature. It is tried before the built-in shapes.
func WithErrorStrategy(signature string, s ErrorStrategy) Option {
	return optionFunc(func(c *clientConfig) {
		c.strategies = append(c.strategies, registeredStrategy{signature, s})
	})
}

// WithAdminURL sets the core admin endpoint used by Client.CoreAdmin.
// Default: "<parent of the core URL>/admin/cores".
func WithAdminURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.adminURL = u
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
// A logger stored in the request context with ContextWithLogger takes
// precedence for that call.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations,
// HTTP requests by status code) on the given registerer. Pass nil to disable
// (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

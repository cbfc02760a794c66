// Package dispatch turns engine operations into HTTP round trips.
//
// It chooses GET or POST for queries by encoded size, attaches the update
// flags, and maps failures to the client's error types. One round trip per
// call: no retries, no caching.
package dispatch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/solr/internal/domain"
	"github.com/kailas-cloud/solr/internal/errextract"
	"github.com/kailas-cloud/solr/internal/logger"
	"github.com/kailas-cloud/solr/internal/params"
	"github.com/kailas-cloud/solr/internal/sanitize"
	"github.com/kailas-cloud/solr/internal/transport"
)

// DefaultMaxQueryLength is the encoded query size at which select switches to POST.
const DefaultMaxQueryLength = 1024

// Content types sent to the engine.
const (
	ContentTypeForm = "application/x-www-form-urlencoded; charset=utf-8"
	ContentTypeXML  = "text/xml; charset=utf-8"
)

const bodyLogPrefix = 10

// Config holds the dispatcher settings.
type Config struct {
	BaseURL        string
	Transport      transport.Transport
	Extractor      *errextract.Extractor
	Logger         *zap.Logger
	MaxQueryLength int
}

// Dispatcher sends requests to one engine endpoint. Read-only after New.
type Dispatcher struct {
	baseURL        string
	transport      transport.Transport
	extractor      *errextract.Extractor
	logger         *zap.Logger
	maxQueryLength int
}

// New creates a Dispatcher. BaseURL and Transport are required.
func New(cfg Config) (*Dispatcher, error) {
	if cfg.BaseURL == "" {
		return nil, domain.NewInvalidArgument("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, domain.NewInvalidArgument("base URL: " + err.Error())
	}
	if cfg.Transport == nil {
		return nil, domain.NewInvalidArgument("transport is required")
	}

	d := &Dispatcher{
		baseURL:        cfg.BaseURL,
		transport:      cfg.Transport,
		extractor:      cfg.Extractor,
		logger:         cfg.Logger,
		maxQueryLength: cfg.MaxQueryLength,
	}
	if d.extractor == nil {
		d.extractor = errextract.New()
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if d.maxQueryLength <= 0 {
		d.maxQueryLength = DefaultMaxQueryLength
	}
	return d, nil
}

// BaseURL returns the endpoint the dispatcher talks to.
func (d *Dispatcher) BaseURL() string { return d.baseURL }

// Select runs a query. Short queries go as GET select/?<qs>; once the
// encoded parameters reach the threshold they are form-posted to select/.
func (d *Dispatcher) Select(ctx context.Context, p url.Values) ([]byte, error) {
	qs := params.Encode(withJSON(p))
	if len(qs) < d.maxQueryLength {
		return d.send(ctx, http.MethodGet, "select/?"+qs, nil, nil)
	}
	header := http.Header{"Content-Type": {ContentTypeForm}}
	return d.send(ctx, http.MethodPost, "select/", []byte(qs), header)
}

// MoreLikeThis runs a more-like-this query.
func (d *Dispatcher) MoreLikeThis(ctx context.Context, p url.Values) ([]byte, error) {
	return d.send(ctx, http.MethodGet, "mlt/?"+params.Encode(withJSON(p)), nil, nil)
}

// Terms queries the terms component.
func (d *Dispatcher) Terms(ctx context.Context, p url.Values) ([]byte, error) {
	return d.send(ctx, http.MethodGet, "terms/?"+params.Encode(withJSON(p)), nil, nil)
}

// UpdateOptions are the flags appended to an update request.
// Nil flags are not sent.
type UpdateOptions struct {
	Commit       *bool
	WaitFlush    *bool
	WaitSearcher *bool
	// SkipSanitize sends the body without removing control characters.
	SkipSanitize bool
}

// Query renders the set flags in commit, waitFlush, waitSearcher order.
func (o UpdateOptions) Query() string {
	var parts []string
	for _, f := range []struct {
		name string
		val  *bool
	}{
		{"commit", o.Commit},
		{"waitFlush", o.WaitFlush},
		{"waitSearcher", o.WaitSearcher},
	} {
		if f.val != nil {
			parts = append(parts, f.name+"="+boolText(*f.val))
		}
	}
	return strings.Join(parts, "&")
}

// Update posts an XML update message to update/.
func (d *Dispatcher) Update(ctx context.Context, body []byte, opts UpdateOptions) ([]byte, error) {
	path := "update/"
	if q := opts.Query(); q != "" {
		path += "?" + q
	}
	if !opts.SkipSanitize {
		body = sanitize.Bytes(body)
	}
	header := http.Header{"Content-Type": {ContentTypeXML}}
	return d.send(ctx, http.MethodPost, path, body, header)
}

// Get sends a GET to path below the base URL. An empty path targets the base
// URL itself.
func (d *Dispatcher) Get(ctx context.Context, path string, p url.Values) ([]byte, error) {
	if len(p) > 0 {
		path += "?" + params.Encode(p)
	}
	return d.send(ctx, http.MethodGet, path, nil, nil)
}

// Post sends body to path below the base URL with the given content type.
func (d *Dispatcher) Post(ctx context.Context, path string, body []byte, contentType string) ([]byte, error) {
	var header http.Header
	if contentType != "" {
		header = http.Header{"Content-Type": {contentType}}
	}
	return d.send(ctx, http.MethodPost, path, body, header)
}

func (d *Dispatcher) send(
	ctx context.Context, method, path string, body []byte, header http.Header,
) ([]byte, error) {
	fullURL := JoinURL(d.baseURL, path)
	log := logger.FromContextOr(ctx, d.logger).With(
		zap.String("url", fullURL),
		zap.String("method", method),
	)

	log.Debug("request started", zap.ByteString("body_prefix", prefix(body, bodyLogPrefix)))
	start := time.Now()

	resp, err := d.transport.Send(ctx, &transport.Request{
		Method: method,
		URL:    fullURL,
		Body:   body,
		Header: header,
	})
	if err != nil {
		terr := &domain.TransportError{URL: fullURL, Timeout: isTimeout(err), Err: err}
		log.Error("request failed", zap.Error(terr))
		return nil, terr
	}

	log.Info("request finished",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := d.extractor.Extract(resp.Header, resp.Body)
		log.Error("engine returned an error",
			zap.Int("status", resp.StatusCode),
			zap.Any("headers", resp.Header),
			zap.String("reason", msg),
		)
		return nil, &domain.RequestFailedError{StatusCode: resp.StatusCode, Message: msg}
	}
	return resp.Body, nil
}

// JoinURL appends path to base with exactly one slash between them. A bare
// query string ("?a=b") is appended to base as is.
func JoinURL(base, path string) string {
	if path == "" || strings.HasPrefix(path, "?") {
		return base + path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

func withJSON(p url.Values) url.Values {
	out := make(url.Values, len(p)+1)
	for k, vs := range p {
		out[k] = append([]string(nil), vs...)
	}
	out.Set("wt", "json")
	return out
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func prefix(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

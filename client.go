package solr

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/solr/internal/dispatch"
	"github.com/kailas-cloud/solr/internal/domain"
	"github.com/kailas-cloud/solr/internal/errextract"
	"github.com/kailas-cloud/solr/internal/metrics"
	"github.com/kailas-cloud/solr/internal/result"
	"github.com/kailas-cloud/solr/internal/transport/httptransport"
)

// Client talks to one engine core. It is safe for concurrent use.
type Client struct {
	d        *dispatch.Dispatcher
	adminURL string
	deps     *deps
	obs      *observer
}

// deps are the collaborators shared by a Client and its CoreAdmin.
type deps struct {
	transport Transport
	extractor *errextract.Extractor
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// New creates a Client for the core at coreURL, e.g.
// "http://localhost:8983/solr/core0".
func New(coreURL string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	dp, err := buildDeps(cfg)
	if err != nil {
		return nil, err
	}
	d, err := dispatch.New(dispatch.Config{
		BaseURL:        coreURL,
		Transport:      dp.transport,
		Extractor:      dp.extractor,
		Logger:         dp.logger,
		MaxQueryLength: cfg.maxQueryLength,
	})
	if err != nil {
		return nil, fmt.Errorf("solr: %w", err)
	}

	adminURL := cfg.adminURL
	if adminURL == "" {
		adminURL = defaultAdminURL(coreURL)
	}
	return &Client{
		d:        d,
		adminURL: adminURL,
		deps:     dp,
		obs:      newObserver(dp.logger, dp.metrics),
	}, nil
}

func buildDeps(cfg *clientConfig) (*deps, error) {
	dp := &deps{logger: cfg.logger}
	if dp.logger == nil {
		dp.logger = zap.NewNop()
	}

	if cfg.metricsReg != nil {
		m, err := metrics.New(cfg.metricsReg)
		if err != nil {
			return nil, err
		}
		dp.metrics = m
	}

	dp.extractor = errextract.New()
	for _, s := range cfg.strategies {
		dp.extractor.Register(s.signature, s.strategy)
	}

	dp.transport = cfg.transport
	if dp.transport == nil {
		dp.transport = httptransport.New(httptransport.Config{
			Client:  cfg.httpClient,
			Timeout: cfg.timeout,
			Metrics: dp.metrics,
		})
	}
	return dp, nil
}

// defaultAdminURL replaces the core name with admin/cores:
// http://host/solr/core0 -> http://host/solr/admin/cores.
func defaultAdminURL(coreURL string) string {
	u, err := url.Parse(coreURL)
	if err != nil {
		return ""
	}
	p := strings.TrimRight(u.Path, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[:i]
	}
	u.Path = p + "/admin/cores"
	u.RawQuery = ""
	return u.String()
}

// URL returns the core URL the client talks to.
func (c *Client) URL() string { return c.d.BaseURL() }

// CoreAdmin returns the core admin API of the engine this client talks to.
func (c *Client) CoreAdmin() *CoreAdmin {
	admin, err := newCoreAdmin(c.adminURL, c.deps, c.obs)
	if err != nil {
		return &CoreAdmin{err: err, obs: c.obs}
	}
	return admin
}

// Ping checks that the core answers its ping handler.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "ping", start, err) }()

	_, err = c.d.Get(ctx, "admin/ping", url.Values{"wt": {"json"}})
	return err
}

// Search runs q with the given options (nil for none).
func (c *Client) Search(ctx context.Context, q string, opts *SearchOptions) (res *Results, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "search", start, err, hits(res)) }()

	p, err := opts.Values(q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	body, err := c.d.Select(ctx, p)
	if err != nil {
		return nil, err
	}
	return result.ParseSelect(body)
}

// MoreLikeThis finds documents similar to those matching q. opts.Fields is
// required.
func (c *Client) MoreLikeThis(ctx context.Context, q string, opts *MoreLikeThisOptions) (res *Results, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "more_like_this", start, err, hits(res)) }()

	p, err := opts.Values(q)
	if err != nil {
		return nil, fmt.Errorf("more like this: %w", err)
	}
	body, err := c.d.MoreLikeThis(ctx, p)
	if err != nil {
		return nil, err
	}
	return result.ParseMoreLikeThis(body)
}

// SuggestTerms returns (term, count) pairs per field for terms starting with
// opts.Prefix.
func (c *Client) SuggestTerms(ctx context.Context, opts *TermsOptions) (terms map[string][]TermCount, err error) {
	start := time.Now()
	defer func() {
		n := 0
		for _, t := range terms {
			n += len(t)
		}
		c.obs.observe(ctx, "suggest_terms", start, err, zap.Int("suggestions", n))
	}()

	p, err := opts.Values()
	if err != nil {
		return nil, fmt.Errorf("suggest terms: %w", err)
	}
	body, err := c.d.Terms(ctx, p)
	if err != nil {
		return nil, err
	}
	return result.ParseTerms(body)
}

func hits(r *Results) zap.Field {
	if r == nil {
		return zap.Skip()
	}
	return zap.Int64("hits", r.Hits)
}

func invalid(op, msg string) error {
	return fmt.Errorf("%s: %w", op, domain.NewInvalidArgument(msg))
}

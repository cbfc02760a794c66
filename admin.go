package solr

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kailas-cloud/solr/internal/dispatch"
	"github.com/kailas-cloud/solr/internal/domain"
)

// DefaultCoreConfig and DefaultCoreSchema are used by CoreAdmin.Create when
// the options leave them empty.
const (
	DefaultCoreConfig = "solrconfig.xml"
	DefaultCoreSchema = "schema.xml"
)

// CoreAdmin manages the cores of one engine instance. Each call is a single
// GET to the admin endpoint and returns the raw response body.
type CoreAdmin struct {
	d   *dispatch.Dispatcher
	obs *observer
	err error
}

// CreateCoreOptions configure CoreAdmin.Create.
type CreateCoreOptions struct {
	// InstanceDir defaults to the core name.
	InstanceDir string
	Config      string
	Schema      string
}

// NewCoreAdmin creates a CoreAdmin for the admin endpoint at adminURL, e.g.
// "http://localhost:8983/solr/admin/cores". WithAdminURL and
// WithMaxQueryLength do not apply.
func NewCoreAdmin(adminURL string, opts ...Option) (*CoreAdmin, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	dp, err := buildDeps(cfg)
	if err != nil {
		return nil, err
	}
	return newCoreAdmin(adminURL, dp, newObserver(dp.logger, dp.metrics))
}

func newCoreAdmin(adminURL string, dp *deps, obs *observer) (*CoreAdmin, error) {
	d, err := dispatch.New(dispatch.Config{
		BaseURL:   adminURL,
		Transport: dp.transport,
		Extractor: dp.extractor,
		Logger:    dp.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("solr: core admin: %w", err)
	}
	return &CoreAdmin{d: d, obs: obs}, nil
}

// Status reports on one core, or on all cores when core is empty.
func (a *CoreAdmin) Status(ctx context.Context, core string) ([]byte, error) {
	p := url.Values{}
	if core != "" {
		p.Set("core", core)
	}
	return a.do(ctx, "STATUS", p)
}

// Create creates and registers a new core.
func (a *CoreAdmin) Create(ctx context.Context, name string, opts *CreateCoreOptions) ([]byte, error) {
	if name == "" {
		return nil, a.invalid("create", "core name is required")
	}
	if opts == nil {
		opts = &CreateCoreOptions{}
	}
	p := url.Values{}
	p.Set("name", name)
	p.Set("instanceDir", orDefault(opts.InstanceDir, name))
	p.Set("config", orDefault(opts.Config, DefaultCoreConfig))
	p.Set("schema", orDefault(opts.Schema, DefaultCoreSchema))
	return a.do(ctx, "CREATE", p)
}

// Reload reloads a core's configuration.
func (a *CoreAdmin) Reload(ctx context.Context, core string) ([]byte, error) {
	if core == "" {
		return nil, a.invalid("reload", "core name is required")
	}
	return a.do(ctx, "RELOAD", url.Values{"core": {core}})
}

// Rename changes a core's name to other.
func (a *CoreAdmin) Rename(ctx context.Context, core, other string) ([]byte, error) {
	if core == "" || other == "" {
		return nil, a.invalid("rename", "core and other names are required")
	}
	return a.do(ctx, "RENAME", url.Values{"core": {core}, "other": {other}})
}

// Swap exchanges the names of two cores.
func (a *CoreAdmin) Swap(ctx context.Context, core, other string) ([]byte, error) {
	if core == "" || other == "" {
		return nil, a.invalid("swap", "core and other names are required")
	}
	return a.do(ctx, "SWAP", url.Values{"core": {core}, "other": {other}})
}

// Unload removes a core from the running instance.
func (a *CoreAdmin) Unload(ctx context.Context, core string) ([]byte, error) {
	if core == "" {
		return nil, a.invalid("unload", "core name is required")
	}
	return a.do(ctx, "UNLOAD", url.Values{"core": {core}})
}

// Load is not supported; it always fails with ErrUnsupportedOperation.
func (a *CoreAdmin) Load(ctx context.Context, _ string) error {
	err := fmt.Errorf("core admin load: %w", domain.ErrUnsupportedOperation)
	a.obs.observe(ctx, "core_load", time.Now(), err)
	return err
}

func (a *CoreAdmin) do(ctx context.Context, action string, p url.Values) (body []byte, err error) {
	start := time.Now()
	defer func() { a.obs.observe(ctx, "core_"+strings.ToLower(action), start, err) }()

	if a.err != nil {
		return nil, a.err
	}
	p.Set("action", action)
	return a.d.Get(ctx, "", p)
}

func (a *CoreAdmin) invalid(op, msg string) error {
	return invalid("core admin "+op, msg)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

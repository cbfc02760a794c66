package solr

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/solr/internal/message"
)

// AddOptions configure Add. The embedded update flags default to commit=true
// when Commit is nil.
type AddOptions struct {
	Boosts       Boosts
	CommitWithin time.Duration
	UpdateOptions
}

// DeleteRequest selects what Delete removes: exactly one of ID, IDs or Query.
type DeleteRequest struct {
	ID    string
	IDs   []string
	Query string
}

// CommitOptions configure Commit.
type CommitOptions struct {
	ExpungeDeletes *bool
	WaitFlush      *bool
	WaitSearcher   *bool
}

// OptimizeOptions configure Optimize. MaxSegments is sent when positive.
type OptimizeOptions struct {
	MaxSegments  int
	WaitFlush    *bool
	WaitSearcher *bool
}

// Add indexes docs. Null and empty-text values are not sent. It returns the
// engine's raw response body.
func (c *Client) Add(ctx context.Context, docs []Document, opts *AddOptions) (body []byte, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "add", start, err, zap.Int("docs", len(docs))) }()

	if opts == nil {
		opts = &AddOptions{}
	}
	if opts.CommitWithin < 0 {
		return nil, invalid("add", "commitWithin must not be negative")
	}

	msg, err := message.BuildAdd(docs, opts.Boosts, opts.CommitWithin)
	if err != nil {
		return nil, fmt.Errorf("add: %w", err)
	}
	return c.d.Update(ctx, msg, commitByDefault(opts.UpdateOptions))
}

// Delete removes documents by id or by query. Contradictory or empty requests
// fail with ErrInvalidArgument before anything is sent. Update flags default
// to commit=true when Commit is nil.
func (c *Client) Delete(ctx context.Context, req DeleteRequest, opts *UpdateOptions) (body []byte, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "delete", start, err) }()

	var msg []byte
	if len(req.IDs) > 0 {
		if req.ID != "" || req.Query != "" {
			return nil, invalid("delete", "specify only one of ID, IDs or Query")
		}
		msg, err = message.DeleteIDs(req.IDs)
	} else {
		msg, err = message.Delete(req.ID, req.Query)
	}
	if err != nil {
		return nil, fmt.Errorf("delete: %w", err)
	}

	var uo UpdateOptions
	if opts != nil {
		uo = *opts
	}
	return c.d.Update(ctx, msg, commitByDefault(uo))
}

// Commit makes pending changes visible.
func (c *Client) Commit(ctx context.Context, opts *CommitOptions) (body []byte, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "commit", start, err) }()

	if opts == nil {
		opts = &CommitOptions{}
	}
	return c.d.Update(ctx, message.Commit(opts.ExpungeDeletes), commitByDefault(UpdateOptions{
		WaitFlush:    opts.WaitFlush,
		WaitSearcher: opts.WaitSearcher,
	}))
}

// Optimize merges index segments.
func (c *Client) Optimize(ctx context.Context, opts *OptimizeOptions) (body []byte, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "optimize", start, err) }()

	if opts == nil {
		opts = &OptimizeOptions{}
	}
	if opts.MaxSegments < 0 {
		return nil, invalid("optimize", "maxSegments must not be negative")
	}
	return c.d.Update(ctx, message.Optimize(opts.MaxSegments), commitByDefault(UpdateOptions{
		WaitFlush:    opts.WaitFlush,
		WaitSearcher: opts.WaitSearcher,
	}))
}

func commitByDefault(o UpdateOptions) UpdateOptions {
	if o.Commit == nil {
		o.Commit = Bool(true)
	}
	return o
}

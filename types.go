package solr

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/solr/internal/codec"
	"github.com/kailas-cloud/solr/internal/dispatch"
	"github.com/kailas-cloud/solr/internal/errextract"
	"github.com/kailas-cloud/solr/internal/logger"
	"github.com/kailas-cloud/solr/internal/message"
	"github.com/kailas-cloud/solr/internal/params"
	"github.com/kailas-cloud/solr/internal/result"
	"github.com/kailas-cloud/solr/internal/transport"
)

// Transport types. Implement Transport to send requests through something
// other than net/http.
type (
	Transport = transport.Transport
	Request   = transport.Request
	Response  = transport.Response
)

// ErrorStrategy scrapes the reason out of one front-end server's error page.
type ErrorStrategy = errextract.Strategy

// ErrorStrategyFunc adapts a function to ErrorStrategy.
type ErrorStrategyFunc = errextract.StrategyFunc

// Date is a calendar date; it is sent as midnight UTC.
type Date = codec.Date

// Query options.
type (
	SearchOptions       = params.SearchOptions
	MoreLikeThisOptions = params.MoreLikeThisOptions
	TermsOptions        = params.TermsOptions
)

// Response types.
type (
	Results   = result.Results
	TermCount = result.TermCount
	Extracted = result.Extracted
)

// Document is an ordered list of fields plus an optional document boost.
// A field named "boost" sets the document boost instead of being indexed.
type Document = message.Doc

// Field is one named value of a Document. A slice or array value is sent as
// one field element per non-empty entry.
type Field = message.Field

// Boosts holds per-field and per-value boost weights for Add. Values is keyed
// by field name, then by the value's wire text; it wins over Fields.
type Boosts = message.Boosts

// UpdateOptions are the flags sent with an update request.
type UpdateOptions = dispatch.UpdateOptions

// DocumentFromMap builds a Document from m with fields in key order.
func DocumentFromMap(m map[string]any) Document {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	d := Document{Fields: make([]Field, 0, len(keys))}
	for _, k := range keys {
		d.Fields = append(d.Fields, Field{Name: k, Value: m[k]})
	}
	return d
}

// Bool returns a pointer to b, for the optional flags in the option structs.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n, for the optional counts in the option structs.
func Int(n int) *int { return &n }

// ContextWithLogger returns a context whose logger is used for the operations
// run with it, instead of the client logger.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return logger.ContextWithLogger(ctx, l)
}

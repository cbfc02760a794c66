// Package params encodes request parameters and validates the typed
// per-operation options.
package params

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kailas-cloud/solr/internal/domain"
)

// Encode percent-encodes p as UTF-8 (spaces as '+'), keys sorted,
// repeated keys for multi-valued parameters.
func Encode(p url.Values) string {
	return p.Encode()
}

// Merge copies every value of src into dst, after the values dst already holds.
func Merge(dst, src url.Values) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

// SearchOptions are the recognised select parameters.
// Extra passes engine-specific parameters through unchanged.
type SearchOptions struct {
	Start           *int
	Rows            *int
	Fields          []string
	FilterQueries   []string
	Sort            string
	DefType         string
	QueryFields     string
	Facet           bool
	FacetFields     []string
	FacetQueries    []string
	FacetMinCount   *int
	FacetLimit      *int
	Highlight       bool
	HighlightFields []string
	Spellcheck      bool
	Stats           bool
	StatsFields     []string
	Debug           bool
	Group           bool
	GroupField      string
	CursorMark      string
	Extra           url.Values
}

// Values validates o and renders it with the query q.
func (o *SearchOptions) Values(q string) (url.Values, error) {
	v := url.Values{}
	v.Set("q", q)
	if o == nil {
		return v, nil
	}

	if err := nonNegative("start", o.Start); err != nil {
		return nil, err
	}
	if err := nonNegative("rows", o.Rows); err != nil {
		return nil, err
	}
	if err := nonNegative("facet.mincount", o.FacetMinCount); err != nil {
		return nil, err
	}
	if o.Group && o.GroupField == "" {
		return nil, domain.NewInvalidArgument("group requires GroupField")
	}
	if o.CursorMark != "" && o.Sort == "" {
		return nil, domain.NewInvalidArgument("cursorMark requires an explicit sort")
	}
	if o.CursorMark != "" && o.Start != nil && *o.Start != 0 {
		return nil, domain.NewInvalidArgument("cursorMark cannot be combined with start")
	}

	setInt(v, "start", o.Start)
	setInt(v, "rows", o.Rows)
	setList(v, "fl", o.Fields)
	addAll(v, "fq", o.FilterQueries)
	setString(v, "sort", o.Sort)
	setString(v, "defType", o.DefType)
	setString(v, "qf", o.QueryFields)

	if o.Facet || len(o.FacetFields) > 0 || len(o.FacetQueries) > 0 {
		v.Set("facet", "true")
		addAll(v, "facet.field", o.FacetFields)
		addAll(v, "facet.query", o.FacetQueries)
		setInt(v, "facet.mincount", o.FacetMinCount)
		setInt(v, "facet.limit", o.FacetLimit)
	}
	if o.Highlight || len(o.HighlightFields) > 0 {
		v.Set("hl", "true")
		setList(v, "hl.fl", o.HighlightFields)
	}
	if o.Spellcheck {
		v.Set("spellcheck", "true")
	}
	if o.Stats || len(o.StatsFields) > 0 {
		v.Set("stats", "true")
		addAll(v, "stats.field", o.StatsFields)
	}
	if o.Debug {
		v.Set("debugQuery", "true")
	}
	if o.Group {
		v.Set("group", "true")
		v.Set("group.field", o.GroupField)
	}
	setString(v, "cursorMark", o.CursorMark)

	Merge(v, o.Extra)
	return v, nil
}

// MoreLikeThisOptions are the recognised more-like-this parameters.
// Fields (mlt.fl) is required.
type MoreLikeThisOptions struct {
	Fields      []string
	MinTermFreq *int
	MinDocFreq  *int
	Start       *int
	Rows        *int
	Extra       url.Values
}

// Values validates o and renders it with the query q.
func (o *MoreLikeThisOptions) Values(q string) (url.Values, error) {
	if o == nil || len(o.Fields) == 0 {
		return nil, domain.NewInvalidArgument("more-like-this requires at least one field (mlt.fl)")
	}
	for _, p := range []struct {
		name string
		val  *int
	}{
		{"mlt.mintf", o.MinTermFreq}, {"mlt.mindf", o.MinDocFreq}, {"start", o.Start}, {"rows", o.Rows},
	} {
		if err := nonNegative(p.name, p.val); err != nil {
			return nil, err
		}
	}

	v := url.Values{}
	v.Set("q", q)
	setList(v, "mlt.fl", o.Fields)
	setInt(v, "mlt.mintf", o.MinTermFreq)
	setInt(v, "mlt.mindf", o.MinDocFreq)
	setInt(v, "start", o.Start)
	setInt(v, "rows", o.Rows)
	Merge(v, o.Extra)
	return v, nil
}

// TermsOptions are the recognised term-suggestion parameters.
type TermsOptions struct {
	Fields   []string
	Prefix   string
	Limit    *int
	MinCount *int
	Extra    url.Values
}

// Values validates o and renders it.
func (o *TermsOptions) Values() (url.Values, error) {
	if o == nil || len(o.Fields) == 0 {
		return nil, domain.NewInvalidArgument("terms requires at least one field (terms.fl)")
	}
	if err := nonNegative("terms.mincount", o.MinCount); err != nil {
		return nil, err
	}

	v := url.Values{}
	addAll(v, "terms.fl", o.Fields)
	v.Set("terms.prefix", o.Prefix)
	setInt(v, "terms.limit", o.Limit)
	setInt(v, "terms.mincount", o.MinCount)
	Merge(v, o.Extra)
	return v, nil
}

func nonNegative(name string, p *int) error {
	if p != nil && *p < 0 {
		return domain.NewInvalidArgument(name + " must be >= 0, got " + strconv.Itoa(*p))
	}
	return nil
}

func setInt(v url.Values, key string, p *int) {
	if p != nil {
		v.Set(key, strconv.Itoa(*p))
	}
}

func setString(v url.Values, key, s string) {
	if s != "" {
		v.Set(key, s)
	}
}

// setList joins list-valued parameters (fl, hl.fl, mlt.fl) with commas.
func setList(v url.Values, key string, items []string) {
	if len(items) > 0 {
		v.Set(key, strings.Join(items, ","))
	}
}

func addAll(v url.Values, key string, items []string) {
	for _, it := range items {
		v.Add(key, it)
	}
}

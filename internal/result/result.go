// Package result decodes the engine's JSON responses into Go values.
package result

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/solr/internal/codec"
	"github.com/kailas-cloud/solr/internal/domain"
)

// Results is one decoded query response.
//
// Optional sections are empty maps when the engine did not return them.
type Results struct {
	Docs           []map[string]any
	Hits           int64
	Start          int64
	MaxScore       *float64
	Highlighting   map[string]any
	Facets         map[string]any
	Spellcheck     map[string]any
	Stats          map[string]any
	Debug          map[string]any
	Grouped        map[string]any
	QTime          *int64
	NextCursorMark string
}

// Len returns the number of documents in this page.
func (r *Results) Len() int { return len(r.Docs) }

// Value returns a stored field of the i-th document decoded to a Go value:
// booleans, timestamps and JSON literals sent as text are recovered, and a
// multi-valued field yields its first entry.
func (r *Results) Value(i int, field string) (any, bool) {
	if i < 0 || i >= len(r.Docs) {
		return nil, false
	}
	raw, ok := r.Docs[i][field]
	if !ok {
		return nil, false
	}
	return codec.FromWire(raw), true
}

// TermCount is one suggestion from the terms component.
type TermCount struct {
	Term  string
	Count int64
}

// Extracted is the result of a rich-document extraction.
type Extracted struct {
	Contents string
	Metadata map[string][]string
}

// ParseSelect decodes a select response.
func ParseSelect(body []byte) (*Results, error) {
	root, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	return build(root)
}

// ParseMoreLikeThis decodes a more-like-this response. A null "response"
// section yields zero documents and zero hits.
func ParseMoreLikeThis(body []byte) (*Results, error) {
	return ParseSelect(body)
}

// ParseTerms decodes a terms response into suggestions per field.
//
// Both the flat list form ["field", [term, count, ...], ...] and the object
// form {"field": [term, count, ...]} are accepted.
func ParseTerms(body []byte) (map[string][]TermCount, error) {
	root, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]TermCount)
	switch terms := root["terms"].(type) {
	case nil:
	case []any:
		if len(terms)%2 != 0 {
			return nil, decodeErr(errors.New("terms: odd number of entries"))
		}
		for i := 0; i < len(terms); i += 2 {
			field, ok := terms[i].(string)
			if !ok {
				return nil, decodeErr(fmt.Errorf("terms: field name is %T", terms[i]))
			}
			counts, err := termCounts(terms[i+1])
			if err != nil {
				return nil, err
			}
			out[field] = counts
		}
	case map[string]any:
		for field, v := range terms {
			counts, err := termCounts(v)
			if err != nil {
				return nil, err
			}
			out[field] = counts
		}
	default:
		return nil, decodeErr(fmt.Errorf("terms: unexpected %T", terms))
	}
	return out, nil
}

// ParseExtract decodes an extraction response for the uploaded fileName.
// Metadata arrives as a flat list of alternating names and value lists.
func ParseExtract(body []byte, fileName string) (*Extracted, error) {
	root, err := decodeObject(body)
	if err != nil {
		return nil, err
	}

	ex := &Extracted{Metadata: make(map[string][]string)}
	if s, ok := root[fileName].(string); ok {
		ex.Contents = s
	}

	raw, _ := root[fileName+"_metadata"].([]any)
	for i := 0; i+1 < len(raw); i += 2 {
		name, ok := raw[i].(string)
		if !ok {
			continue
		}
		ex.Metadata[name] = stringList(raw[i+1])
	}
	return ex, nil
}

func build(root map[string]any) (*Results, error) {
	r := &Results{
		Docs:         []map[string]any{},
		Highlighting: section(root, "highlighting"),
		Facets:       section(root, "facet_counts"),
		Spellcheck:   section(root, "spellcheck"),
		Stats:        section(root, "stats"),
		Debug:        section(root, "debug"),
		Grouped:      section(root, "grouped"),
	}

	if resp, ok := root["response"].(map[string]any); ok {
		docs, _ := resp["docs"].([]any)
		for i, d := range docs {
			doc, ok := d.(map[string]any)
			if !ok {
				return nil, decodeErr(fmt.Errorf("response.docs[%d] is %T", i, d))
			}
			r.Docs = append(r.Docs, doc)
		}
		r.Hits, _ = toInt64(resp["numFound"])
		r.Start, _ = toInt64(resp["start"])
		if f, ok := toFloat64(resp["maxScore"]); ok {
			r.MaxScore = &f
		}
	}

	if header, ok := root["responseHeader"].(map[string]any); ok {
		if q, ok := toInt64(header["QTime"]); ok {
			r.QTime = &q
		}
	}
	if s, ok := root["nextCursorMark"].(string); ok {
		r.NextCursorMark = s
	}
	return r, nil
}

func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, decodeErr(err)
	}
	if root == nil {
		return nil, decodeErr(errors.New("response is not a JSON object"))
	}
	return root, nil
}

func decodeErr(err error) error { return &domain.DecodingError{Err: err} }

func section(root map[string]any, key string) map[string]any {
	if m, ok := root[key].(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func termCounts(v any) ([]TermCount, error) {
	switch x := v.(type) {
	case []any:
		if len(x)%2 != 0 {
			return nil, decodeErr(errors.New("terms: odd number of term/count entries"))
		}
		out := make([]TermCount, 0, len(x)/2)
		for i := 0; i < len(x); i += 2 {
			term, ok := x[i].(string)
			if !ok {
				return nil, decodeErr(fmt.Errorf("terms: term is %T", x[i]))
			}
			n, ok := toInt64(x[i+1])
			if !ok {
				return nil, decodeErr(fmt.Errorf("terms: count for %q is %T", term, x[i+1]))
			}
			out = append(out, TermCount{Term: term, Count: n})
		}
		return out, nil
	case map[string]any:
		out := make([]TermCount, 0, len(x))
		for term, c := range x {
			n, ok := toInt64(c)
			if !ok {
				return nil, decodeErr(fmt.Errorf("terms: count for %q is %T", term, c))
			}
			out = append(out, TermCount{Term: term, Count: n})
		}
		// Object keys carry no order; present the most frequent first.
		sort.Slice(out, func(i, j int) bool {
			if out[i].Count != out[j].Count {
				return out[i].Count > out[j].Count
			}
			return out[i].Term < out[j].Term
		})
		return out, nil
	default:
		return nil, decodeErr(fmt.Errorf("terms: unexpected %T", v))
	}
}

func stringList(v any) []string {
	switch x := v.(type) {
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			out = append(out, fmt.Sprint(e))
		}
		return out
	case nil:
		return nil
	default:
		return []string{fmt.Sprint(x)}
	}
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		f, err := x.Float64()
		return int64(f), err == nil
	case float64:
		return int64(x), true
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		return n, err == nil
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case float64:
		return x, true
	}
	return 0, false
}

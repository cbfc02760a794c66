package result

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/solr/internal/domain"
)

const selectBody = `{
  "responseHeader": {"status": 0, "QTime": 7},
  "response": {
    "numFound": 42, "start": 10, "maxScore": 1.5,
    "docs": [
      {"id": "doc_1", "title": ["Example doc 1"], "flag": "true",
       "created": "2013-01-18T00:30:28Z", "price": 12.5},
      {"id": "doc_2"}
    ]
  },
  "highlighting": {"doc_1": {"title": ["<em>Example</em> doc 1"]}},
  "facet_counts": {"facet_fields": {"cat": ["a", 2, "b", 1]}},
  "nextCursorMark": "AoE="
}`

func TestParseSelect(t *testing.T) {
	r, err := ParseSelect([]byte(selectBody))
	require.NoError(t, err)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, int64(42), r.Hits)
	assert.Equal(t, int64(10), r.Start)
	require.NotNil(t, r.MaxScore)
	assert.InDelta(t, 1.5, *r.MaxScore, 1e-9)
	require.NotNil(t, r.QTime)
	assert.Equal(t, int64(7), *r.QTime)
	assert.Equal(t, "AoE=", r.NextCursorMark)
	assert.Contains(t, r.Highlighting, "doc_1")
	assert.Contains(t, r.Facets, "facet_fields")

	assert.Empty(t, r.Spellcheck)
	assert.NotNil(t, r.Spellcheck)
	assert.NotNil(t, r.Stats)
	assert.NotNil(t, r.Debug)
	assert.NotNil(t, r.Grouped)
}

func TestResults_Value(t *testing.T) {
	r, err := ParseSelect([]byte(selectBody))
	require.NoError(t, err)

	v, ok := r.Value(0, "title")
	require.True(t, ok)
	assert.Equal(t, "Example doc 1", v)

	v, _ = r.Value(0, "flag")
	assert.Equal(t, true, v)

	v, _ = r.Value(0, "created")
	assert.Equal(t, time.Date(2013, 1, 18, 0, 30, 28, 0, time.UTC), v)

	v, _ = r.Value(0, "price")
	assert.Equal(t, json.Number("12.5"), v)

	_, ok = r.Value(1, "title")
	assert.False(t, ok)
	_, ok = r.Value(5, "id")
	assert.False(t, ok)
}

func TestParseSelect_MinimalBody(t *testing.T) {
	r, err := ParseSelect([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
	assert.NotNil(t, r.Docs)
	assert.Equal(t, int64(0), r.Hits)
	assert.Nil(t, r.MaxScore)
	assert.Nil(t, r.QTime)
}

func TestParseSelect_InvalidJSON(t *testing.T) {
	for _, body := range []string{"", "<html>", "null", `{"response":`} {
		_, err := ParseSelect([]byte(body))
		assert.ErrorIs(t, err, domain.ErrDecoding, "body %q", body)

		var de *domain.DecodingError
		assert.True(t, errors.As(err, &de), "body %q", body)
	}
}

func TestParseMoreLikeThis_NullResponse(t *testing.T) {
	r, err := ParseMoreLikeThis([]byte(`{"responseHeader":{"QTime":1},"response":null}`))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, int64(0), r.Hits)
}

func TestParseMoreLikeThis_Docs(t *testing.T) {
	body := `{"response":{"numFound":1,"start":0,"docs":[{"id":"doc_3"}]},
	          "match":{"numFound":1,"docs":[{"id":"doc_1"}]}}`
	r, err := ParseMoreLikeThis([]byte(body))
	require.NoError(t, err)
	require.Equal(t, 1, r.Len())
	assert.Equal(t, "doc_3", r.Docs[0]["id"])
}

func TestParseTerms(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"flat list", `{"terms":["title",["doc",3,"example",1],"body",[]]}`},
		{"object", `{"terms":{"title":["doc",3,"example",1],"body":[]}}`},
	}
	want := map[string][]TermCount{
		"title": {{Term: "doc", Count: 3}, {Term: "example", Count: 1}},
		"body":  {},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTerms([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseTerms_NestedObjectCounts(t *testing.T) {
	got, err := ParseTerms([]byte(`{"terms":{"title":{"example":1,"doc":3,"abc":1}}}`))
	require.NoError(t, err)
	assert.Equal(t, []TermCount{
		{Term: "doc", Count: 3}, {Term: "abc", Count: 1}, {Term: "example", Count: 1},
	}, got["title"])
}

func TestParseTerms_Malformed(t *testing.T) {
	for _, body := range []string{
		`{"terms":["title"]}`,
		`{"terms":{"title":["doc"]}}`,
		`{"terms":{"title":["doc","x"]}}`,
		`{"terms":"nope"}`,
	} {
		_, err := ParseTerms([]byte(body))
		assert.ErrorIs(t, err, domain.ErrDecoding, "body %s", body)
	}
}

func TestParseTerms_Missing(t *testing.T) {
	got, err := ParseTerms([]byte(`{"responseHeader":{}}`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseExtract(t *testing.T) {
	body := `{
	  "responseHeader":{"status":0,"QTime":3},
	  "test.html":"\n\nFoo bar baz\n",
	  "test.html_metadata":[
	    "stream_size",["1212"],
	    "Content-Type",["text/html; charset=UTF-8"],
	    "title",["Test Title","Alt"]
	  ]
	}`
	ex, err := ParseExtract([]byte(body), "test.html")
	require.NoError(t, err)
	assert.Equal(t, "\n\nFoo bar baz\n", ex.Contents)
	assert.Equal(t, map[string][]string{
		"stream_size":  {"1212"},
		"Content-Type": {"text/html; charset=UTF-8"},
		"title":        {"Test Title", "Alt"},
	}, ex.Metadata)
}

func TestParseExtract_NoContent(t *testing.T) {
	ex, err := ParseExtract([]byte(`{"responseHeader":{"status":0}}`), "missing.pdf")
	require.NoError(t, err)
	assert.Empty(t, ex.Contents)
	assert.Empty(t, ex.Metadata)
}

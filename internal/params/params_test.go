package params

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/solr/internal/domain"
)

func TestEncode_UTF8(t *testing.T) {
	got := Encode(url.Values{"test": {"Hello ☃! Helllo world!"}})
	assert.Equal(t, "test=Hello+%E2%98%83%21+Helllo+world%21", got)
}

func TestEncode_MultiValued(t *testing.T) {
	got := Encode(url.Values{"fq": {"a:1", "b:2"}, "q": {"*:*"}})
	assert.Equal(t, "fq=a%3A1&fq=b%3A2&q=%2A%3A%2A", got)
}

func TestSearchOptions_Nil(t *testing.T) {
	var o *SearchOptions
	v, err := o.Values("title:go")
	require.NoError(t, err)
	assert.Equal(t, url.Values{"q": {"title:go"}}, v)
}

func TestSearchOptions_Values(t *testing.T) {
	start, rows, minCount := 10, 5, 1
	o := &SearchOptions{
		Start:           &start,
		Rows:            &rows,
		Fields:          []string{"id", "title"},
		FilterQueries:   []string{"type:book", "lang:en"},
		Sort:            "id asc",
		FacetFields:     []string{"author"},
		FacetMinCount:   &minCount,
		HighlightFields: []string{"title"},
		Debug:           true,
		Extra:           url.Values{"spellcheck.count": {"3"}},
	}

	v, err := o.Values("go")
	require.NoError(t, err)
	assert.Equal(t, "go", v.Get("q"))
	assert.Equal(t, "10", v.Get("start"))
	assert.Equal(t, "5", v.Get("rows"))
	assert.Equal(t, "id,title", v.Get("fl"))
	assert.Equal(t, []string{"type:book", "lang:en"}, v["fq"])
	assert.Equal(t, "id asc", v.Get("sort"))
	assert.Equal(t, "true", v.Get("facet"))
	assert.Equal(t, "author", v.Get("facet.field"))
	assert.Equal(t, "1", v.Get("facet.mincount"))
	assert.Equal(t, "true", v.Get("hl"))
	assert.Equal(t, "title", v.Get("hl.fl"))
	assert.Equal(t, "true", v.Get("debugQuery"))
	assert.Equal(t, "3", v.Get("spellcheck.count"))
	assert.Empty(t, v.Get("group"))
}

func TestSearchOptions_Validation(t *testing.T) {
	neg, one := -1, 1
	tests := []struct {
		name string
		opts SearchOptions
	}{
		{"negative rows", SearchOptions{Rows: &neg}},
		{"negative start", SearchOptions{Start: &neg}},
		{"group without field", SearchOptions{Group: true}},
		{"cursor without sort", SearchOptions{CursorMark: "*"}},
		{"cursor with start", SearchOptions{CursorMark: "*", Sort: "id asc", Start: &one}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.Values("q")
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
		})
	}
}

func TestMoreLikeThisOptions(t *testing.T) {
	_, err := (*MoreLikeThisOptions)(nil).Values("id:1")
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	mintf := 1
	v, err := (&MoreLikeThisOptions{Fields: []string{"title", "body"}, MinTermFreq: &mintf}).Values("id:1")
	require.NoError(t, err)
	assert.Equal(t, "title,body", v.Get("mlt.fl"))
	assert.Equal(t, "1", v.Get("mlt.mintf"))
	assert.Equal(t, "id:1", v.Get("q"))
}

func TestTermsOptions(t *testing.T) {
	_, err := (&TermsOptions{}).Values()
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))

	limit := 10
	v, err := (&TermsOptions{Fields: []string{"title", "tags"}, Prefix: "da", Limit: &limit}).Values()
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "tags"}, v["terms.fl"])
	assert.Equal(t, "da", v.Get("terms.prefix"))
	assert.Equal(t, "10", v.Get("terms.limit"))
}

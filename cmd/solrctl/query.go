package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/solr"
)

// resultsView is the JSON shape printed for search and mlt.
type resultsView struct {
	Hits           int64            `json:"hits"`
	Start          int64            `json:"start"`
	MaxScore       *float64         `json:"max_score,omitempty"`
	QTime          *int64           `json:"qtime,omitempty"`
	Docs           []map[string]any `json:"docs"`
	Highlighting   map[string]any   `json:"highlighting,omitempty"`
	Facets         map[string]any   `json:"facets,omitempty"`
	Spellcheck     map[string]any   `json:"spellcheck,omitempty"`
	Stats          map[string]any   `json:"stats,omitempty"`
	Grouped        map[string]any   `json:"grouped,omitempty"`
	Debug          map[string]any   `json:"debug,omitempty"`
	NextCursorMark string           `json:"next_cursor_mark,omitempty"`
}

func viewResults(r *solr.Results) resultsView {
	return resultsView{
		Hits:           r.Hits,
		Start:          r.Start,
		MaxScore:       r.MaxScore,
		QTime:          r.QTime,
		Docs:           r.Docs,
		Highlighting:   r.Highlighting,
		Facets:         r.Facets,
		Spellcheck:     r.Spellcheck,
		Stats:          r.Stats,
		Grouped:        r.Grouped,
		Debug:          r.Debug,
		NextCursorMark: r.NextCursorMark,
	}
}

func (a *app) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the core answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Ping(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", a.client.URL())
			return err
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	var (
		rows, start int
		fields      []string
		filters     []string
		facetFields []string
		hlFields    []string
		sort        string
		defType     string
		cursor      string
		extra       []string
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Run a query against the core",
		Long: `Run a query and print the matching page as JSON.

Examples:
  solrctl search '*:*' --rows 10
  solrctl search 'title:go' --fq 'type:book' --facet-field author
  solrctl search '*:*' --sort 'id asc' --cursor '*'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseParams(extra)
			if err != nil {
				return err
			}
			opts := &solr.SearchOptions{
				Fields:          fields,
				FilterQueries:   filters,
				Sort:            sort,
				DefType:         defType,
				CursorMark:      cursor,
				Facet:           len(facetFields) > 0,
				FacetFields:     facetFields,
				Highlight:       len(hlFields) > 0,
				HighlightFields: hlFields,
				Extra:           p,
			}
			if cmd.Flags().Changed("rows") {
				opts.Rows = solr.Int(rows)
			}
			if cmd.Flags().Changed("start") {
				opts.Start = solr.Int(start)
			}

			res, err := a.client.Search(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), viewResults(res))
		},
	}

	f := cmd.Flags()
	f.IntVar(&rows, "rows", 10, "page size")
	f.IntVar(&start, "start", 0, "offset of the first result")
	f.StringSliceVar(&fields, "fl", nil, "fields to return")
	f.StringArrayVar(&filters, "fq", nil, "filter query (repeatable)")
	f.StringSliceVar(&facetFields, "facet-field", nil, "facet on these fields")
	f.StringSliceVar(&hlFields, "hl", nil, "highlight these fields")
	f.StringVar(&sort, "sort", "", "sort clause, e.g. 'price asc'")
	f.StringVar(&defType, "def-type", "", "query parser")
	f.StringVar(&cursor, "cursor", "", "cursor mark for deep paging")
	f.StringArrayVarP(&extra, "param", "p", nil, "extra request parameter key=value (repeatable)")
	return cmd
}

func (a *app) mltCmd() *cobra.Command {
	var (
		fields []string
		rows   int
		extra  []string
	)

	cmd := &cobra.Command{
		Use:   "mlt QUERY",
		Short: "Find documents similar to the ones matching QUERY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseParams(extra)
			if err != nil {
				return err
			}
			opts := &solr.MoreLikeThisOptions{Fields: fields, Extra: p}
			if cmd.Flags().Changed("rows") {
				opts.Rows = solr.Int(rows)
			}

			res, err := a.client.MoreLikeThis(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), viewResults(res))
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&fields, "fl", nil, "similarity fields (required)")
	f.IntVar(&rows, "rows", 10, "page size")
	f.StringArrayVarP(&extra, "param", "p", nil, "extra request parameter key=value (repeatable)")
	return cmd
}

type termView struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

func (a *app) termsCmd() *cobra.Command {
	var (
		fields   []string
		prefix   string
		limit    int
		minCount int
	)

	cmd := &cobra.Command{
		Use:   "terms",
		Short: "Suggest indexed terms for autocomplete",
		Long: `Print indexed terms per field with their document counts.

Examples:
  solrctl terms --fl title --prefix go --limit 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &solr.TermsOptions{Fields: fields, Prefix: prefix}
			if cmd.Flags().Changed("limit") {
				opts.Limit = solr.Int(limit)
			}
			if cmd.Flags().Changed("min-count") {
				opts.MinCount = solr.Int(minCount)
			}

			terms, err := a.client.SuggestTerms(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := make(map[string][]termView, len(terms))
			for field, tcs := range terms {
				views := make([]termView, 0, len(tcs))
				for _, tc := range tcs {
					views = append(views, termView{Term: tc.Term, Count: tc.Count})
				}
				out[field] = views
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&fields, "fl", nil, "fields to read terms from (required)")
	f.StringVar(&prefix, "prefix", "", "only terms starting with this prefix")
	f.IntVar(&limit, "limit", 10, "terms per field")
	f.IntVar(&minCount, "min-count", 1, "minimum document count")
	return cmd
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/solr"
)

func (a *app) addCmd() *cobra.Command {
	var (
		commitWithin time.Duration
		noCommit     bool
		boosts       []string
	)

	cmd := &cobra.Command{
		Use:   "add [FILE]",
		Short: "Index documents from a JSON file or stdin",
		Long: `Index documents read as JSON: a single object or an array of objects.
A "boost" key sets the document boost. Reads stdin when FILE is "-" or absent.

Examples:
  solrctl add docs.json
  echo '{"id":"1","title":"Go"}' | solrctl add --boost title=2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(filepath.Clean(args[0]))
				if err != nil {
					return fmt.Errorf("open documents: %w", err)
				}
				defer f.Close()
				in = f
			}

			docs, err := readDocuments(in)
			if err != nil {
				return err
			}
			fieldBoosts, err := parseBoosts(boosts)
			if err != nil {
				return err
			}

			opts := &solr.AddOptions{
				Boosts:       solr.Boosts{Fields: fieldBoosts},
				CommitWithin: commitWithin,
			}
			if noCommit {
				opts.Commit = solr.Bool(false)
			}
			body, err := a.client.Add(cmd.Context(), docs, opts)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), body)
		},
	}

	f := cmd.Flags()
	f.DurationVar(&commitWithin, "commit-within", 0, "ask the engine to commit within this window")
	f.BoolVar(&noCommit, "no-commit", false, "do not commit after the update")
	f.StringArrayVar(&boosts, "boost", nil, "field boost field=weight (repeatable)")
	return cmd
}

// readDocuments decodes one JSON object or an array of them. Numbers keep
// their literal text.
func readDocuments(r io.Reader) ([]solr.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("no documents given")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var objs []map[string]any
	if data[0] == '[' {
		err = dec.Decode(&objs)
	} else {
		var obj map[string]any
		err = dec.Decode(&obj)
		objs = []map[string]any{obj}
	}
	if err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	docs := make([]solr.Document, 0, len(objs))
	for _, o := range objs {
		docs = append(docs, solr.DocumentFromMap(o))
	}
	return docs, nil
}

func parseBoosts(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		field, w, ok := strings.Cut(p, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("boost %q must be field=weight", p)
		}
		weight, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return nil, fmt.Errorf("boost %q: %w", p, err)
		}
		out[field] = weight
	}
	return out, nil
}

func (a *app) deleteCmd() *cobra.Command {
	var (
		ids      []string
		query    string
		noCommit bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete documents by id or by query",
		Long: `Delete documents. Give either --id (repeatable) or --query, not both.

Examples:
  solrctl delete --id doc_1 --id doc_2
  solrctl delete --query 'type:draft'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts *solr.UpdateOptions
			if noCommit {
				opts = &solr.UpdateOptions{Commit: solr.Bool(false)}
			}
			body, err := a.client.Delete(cmd.Context(), solr.DeleteRequest{IDs: ids, Query: query}, opts)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), body)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&ids, "id", nil, "document id (repeatable)")
	f.StringVar(&query, "query", "", "delete every document matching this query")
	f.BoolVar(&noCommit, "no-commit", false, "do not commit after the update")
	return cmd
}

func (a *app) commitCmd() *cobra.Command {
	var expunge, waitSearcher bool

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Make pending updates visible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &solr.CommitOptions{}
			if cmd.Flags().Changed("expunge-deletes") {
				opts.ExpungeDeletes = solr.Bool(expunge)
			}
			if cmd.Flags().Changed("wait-searcher") {
				opts.WaitSearcher = solr.Bool(waitSearcher)
			}
			body, err := a.client.Commit(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), body)
		},
	}

	cmd.Flags().BoolVar(&expunge, "expunge-deletes", false, "merge away deleted documents")
	cmd.Flags().BoolVar(&waitSearcher, "wait-searcher", true, "wait for the new searcher")
	return cmd
}

func (a *app) optimizeCmd() *cobra.Command {
	var maxSegments int

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Merge index segments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.client.Optimize(cmd.Context(), &solr.OptimizeOptions{MaxSegments: maxSegments})
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), body)
		},
	}

	cmd.Flags().IntVar(&maxSegments, "max-segments", 0, "merge down to at most this many segments")
	return cmd
}

type extractView struct {
	Contents string              `json:"contents"`
	Metadata map[string][]string `json:"metadata"`
}

func (a *app) extractCmd() *cobra.Command {
	var (
		index bool
		extra []string
	)

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Extract text and metadata from a rich document",
		Long: `Upload a PDF, HTML or office document to the extracting handler and
print its text and metadata. With --index the document is also stored.

Examples:
  solrctl extract report.pdf
  solrctl extract report.pdf --index -p literal.id=report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseParams(extra)
			if err != nil {
				return err
			}
			f, err := os.Open(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			ex, err := a.client.Extract(cmd.Context(), solr.ExtractRequest{
				FileName: filepath.Base(args[0]),
				Content:  f,
				Index:    index,
				Extra:    p,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), extractView{Contents: ex.Contents, Metadata: ex.Metadata})
		},
	}

	cmd.Flags().BoolVar(&index, "index", false, "store the extracted document")
	cmd.Flags().StringArrayVarP(&extra, "param", "p", nil, "extra request parameter key=value (repeatable)")
	return cmd
}

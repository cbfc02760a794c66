// Package solr is a Go client for Solr-compatible full-text search engines.
//
// Documents are sent as XML update messages and results are read back as
// JSON. Failed requests carry a readable reason recovered from whatever error
// page the server in front of the engine returned.
//
// # Querying
//
//	client, _ := solr.New("http://localhost:8983/solr/core0",
//	    solr.WithTimeout(10*time.Second),
//	    solr.WithLogger(logger),
//	)
//	res, err := client.Search(ctx, "title:winter", &solr.SearchOptions{
//	    Rows:          solr.Int(20),
//	    FilterQueries: []string{"season:winter"},
//	})
//	for i := range res.Docs {
//	    title, _ := res.Value(i, "title")
//	    fmt.Println(title)
//	}
//
// Long queries are posted instead of sent in the URL; see WithMaxQueryLength.
//
// # Indexing
//
//	_, err := client.Add(ctx, []solr.Document{
//	    solr.DocumentFromMap(map[string]any{
//	        "id":      "doc_1",
//	        "title":   "A winter's tale",
//	        "tags":    []string{"winter", "snow"},
//	        "created": time.Now().UTC(),
//	    }),
//	}, &solr.AddOptions{CommitWithin: 5 * time.Second})
//
//	_, err = client.Delete(ctx, solr.DeleteRequest{Query: "season:summer"}, nil)
//
// # Errors
//
// Transport failures wrap ErrTransport (*TransportError), non-2xx responses
// wrap ErrRequestFailed (*RequestFailedError) and caller mistakes are
// reported as ErrInvalidArgument before any request is sent.
package solr

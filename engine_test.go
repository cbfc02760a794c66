package solr

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// recorded is one request seen by the fake engine.
type recorded struct {
	Method      string
	Path        string
	Query       url.Values
	RawQuery    string
	ContentType string
	Body        string
	FileName    string
}

// fakeEngine serves a core at /solr/core0 and core admin at /solr/admin/cores.
type fakeEngine struct {
	srv *httptest.Server

	mu       sync.Mutex
	requests []recorded
}

func newFakeEngine(t *testing.T) *fakeEngine {
	t.Helper()
	e := &fakeEngine{}

	r := chi.NewRouter()
	r.Route("/solr/core0", func(r chi.Router) {
		r.Get("/select/", e.record(e.selectHandler))
		r.Post("/select/", e.record(e.selectHandler))
		r.Get("/mlt/", e.record(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"responseHeader":{"status":0,"QTime":1},"response":null}`)
		}))
		r.Get("/terms/", e.record(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"terms":["title",["doc",3,"docs",1]]}`)
		}))
		r.Post("/update/", e.record(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/xml")
			_, _ = io.WriteString(w, `<response><int name="status">0</int></response>`)
		}))
		r.Post("/update/extract", e.record(func(w http.ResponseWriter, _ *http.Request) {
			name := e.last().FileName
			writeJSON(w, `{"responseHeader":{"status":0},"`+name+`":"extracted text","`+
				name+`_metadata":["content-type",["text/html"]]}`)
		}))
		r.Get("/admin/ping", e.record(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"status":"OK"}`)
		}))
	})
	r.Get("/solr/admin/cores", e.record(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, `{"responseHeader":{"status":0}}`)
	}))

	e.srv = httptest.NewServer(r)
	t.Cleanup(e.srv.Close)
	return e
}

func (e *fakeEngine) coreURL() string  { return e.srv.URL + "/solr/core0" }
func (e *fakeEngine) adminURL() string { return e.srv.URL + "/solr/admin/cores" }

func (e *fakeEngine) last() recorded {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.requests) == 0 {
		return recorded{}
	}
	return e.requests[len(e.requests)-1]
}

func (e *fakeEngine) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.requests)
}

func (e *fakeEngine) record(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.Query(),
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
		}
		if mr, err := r.MultipartReader(); err == nil {
			for {
				part, err := mr.NextPart()
				if err != nil {
					break
				}
				b, _ := io.ReadAll(part)
				rec.FileName = part.FileName()
				rec.Body = string(b)
			}
		} else {
			b, _ := io.ReadAll(r.Body)
			rec.Body = string(b)
		}

		e.mu.Lock()
		e.requests = append(e.requests, rec)
		e.mu.Unlock()

		next(w, r)
	}
}

func (e *fakeEngine) selectHandler(w http.ResponseWriter, r *http.Request) {
	q := e.last().Query.Get("q")
	if r.Method == http.MethodPost {
		form, _ := url.ParseQuery(e.last().Body)
		q = form.Get("q")
	}

	switch q {
	case "undefined:field":
		w.Header().Set("Server", "Jetty(6.1.3)")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "<html><head><title>Error 400</title></head>"+
			"<body><h2>HTTP ERROR: 400</h2><pre>undefined field undefined</pre></body></html>")
	case "not:json":
		_, _ = io.WriteString(w, "<html>not json</html>")
	default:
		writeJSON(w, `{
		  "responseHeader":{"status":0,"QTime":4},
		  "response":{"numFound":3,"start":0,"maxScore":2.5,"docs":[
		    {"id":"doc_1","title":["Example doc 1"],"popularity":10,"in_stock":"true"},
		    {"id":"doc_2","title":["Another example"],"created":"2013-01-18T00:30:28Z"}
		  ]},
		  "highlighting":{"doc_1":{"title":["<em>Example</em> doc 1"]}}
		}`)
	}
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

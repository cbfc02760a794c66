package httptransport

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/solr/internal/metrics"
	"github.com/kailas-cloud/solr/internal/transport"
)

func TestSend_RoundTrip(t *testing.T) {
	var gotMethod, gotCT, gotUA, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		gotUA = r.Header.Get("User-Agent")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Server", "Jetty(9)")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr := New(Config{UserAgent: "test-agent"})
	resp, err := tr.Send(context.Background(), &transport.Request{
		Method: http.MethodPost,
		URL:    srv.URL + "/update/",
		Body:   []byte("<commit/>"),
		Header: http.Header{"Content-Type": {"text/xml; charset=utf-8"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("status = %d, want 202", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.Header.Get("Server") != "Jetty(9)" {
		t.Errorf("server header = %q", resp.Header.Get("Server"))
	}
	if gotMethod != http.MethodPost || gotBody != "<commit/>" {
		t.Errorf("server saw %s %q", gotMethod, gotBody)
	}
	if gotCT != "text/xml; charset=utf-8" {
		t.Errorf("content type = %q", gotCT)
	}
	if gotUA != "test-agent" {
		t.Errorf("user agent = %q", gotUA)
	}
}

func TestSend_DefaultUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	if _, err := New(Config{}).Send(context.Background(), &transport.Request{Method: http.MethodGet, URL: srv.URL}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(ua, "solr-go/") {
		t.Errorf("user agent = %q", ua)
	}
}

func TestSend_NonSuccessIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	resp, err := New(Config{}).Send(context.Background(), &transport.Request{Method: http.MethodGet, URL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestSend_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(Config{Timeout: 50 * time.Millisecond}).Send(context.Background(),
		&transport.Request{Method: http.MethodGet, URL: srv.URL})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	var ne net.Error
	if !errors.As(err, &ne) || !ne.Timeout() {
		t.Errorf("expected net.Error with Timeout(), got %v", err)
	}
}

func TestSend_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(Config{}).Send(context.Background(), &transport.Request{Method: http.MethodGet, URL: url})
	if err == nil {
		t.Fatal("expected connection error")
	}
}

func TestSend_RecordsMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	tr := New(Config{Client: &http.Client{Timeout: time.Second}, Metrics: m})
	if _, err := tr.Send(context.Background(), &transport.Request{Method: http.MethodGet, URL: srv.URL}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "404")); got != 1 {
		t.Errorf("GET 404 = %f, want 1", got)
	}
}

func TestNew_DoesNotMutateSuppliedClient(t *testing.T) {
	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	c := &http.Client{}
	_ = New(Config{Client: c, Metrics: m})
	if c.Transport != nil {
		t.Error("supplied client was modified")
	}
}

// Package errextract turns a failed engine response into one readable message.
//
// The engine does not return a uniform error body: depending on the web
// server in front of it the reason sits in a header, in an HTML paragraph or
// in an XML element. Server shapes are pluggable strategies keyed by a
// substring of the Server header.
package errextract

import (
	"net/http"
	"strings"
)

// Built-in server signatures.
const (
	SignatureCoyote = "coyote"
	SignatureJetty  = "jetty"
)

type registered struct {
	signature string
	strategy  Strategy
}

// Extractor produces error messages from non-success responses.
// Configure it with Register before sharing it between goroutines.
type Extractor struct {
	strategies []registered
	fallback   Strategy
}

// New returns an Extractor with the built-in strategies.
func New() *Extractor {
	return &Extractor{
		strategies: []registered{
			{SignatureCoyote, HTMLParagraph{Label: "message"}},
			{SignatureJetty, XMLPath{Path: []string{"body", "pre"}}},
		},
		fallback: XMLPath{Path: []string{"head", "title"}},
	}
}

// Register adds a strategy for servers whose Server header contains signature
// (case-insensitive). Later registrations are tried before earlier ones and
// before the built-ins.
func (e *Extractor) Register(signature string, s Strategy) {
	e.strategies = append([]registered{{strings.ToLower(signature), s}}, e.strategies...)
}

// StrategyFor picks the strategy for a Server header value.
func (e *Extractor) StrategyFor(server string) Strategy {
	server = strings.ToLower(server)
	if server != "" {
		for _, r := range e.strategies {
			if strings.Contains(server, r.signature) {
				return r.strategy
			}
		}
	}
	return e.fallback
}

// Extract returns "[Reason: <reason>]" when a reason is found, otherwise
// "[Reason: None]" followed by a normalised dump of the body.
func (e *Extractor) Extract(header http.Header, body []byte) string {
	if reason, ok := headerValue(header, "reason"); ok {
		return "[Reason: " + reason + "]"
	}

	reason, dump := e.StrategyFor(header.Get("Server")).Scrape(body)
	if reason != "" {
		return "[Reason: " + reason + "]"
	}
	return "[Reason: None]\n" + Unescape(normalize(dump))
}

// headerValue reports presence separately from value: an empty reason
// header is still the reason.
func headerValue(h http.Header, key string) (string, bool) {
	vs, ok := h[http.CanonicalHeaderKey(key)]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// normalize removes line breaks first so "<br\n/>" also collapses.
func normalize(dump string) string {
	for _, s := range []string{"\n", "\r", "<br/>", "<br />"} {
		dump = strings.ReplaceAll(dump, s, "")
	}
	return strings.TrimSpace(dump)
}

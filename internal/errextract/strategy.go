package errextract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html/charset"
)

// Strategy scrapes one front-end server's error page.
//
// Scrape returns the reason when the page shape was recognised, otherwise an
// empty reason and a dump of the page to report instead. Implementations must
// not fail: unparsable pages degrade to the raw body.
type Strategy interface {
	Scrape(body []byte) (reason, dump string)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(body []byte) (reason, dump string)

// Scrape implements Strategy.
func (f StrategyFunc) Scrape(body []byte) (string, string) { return f(body) }

// XMLPath looks for the element at Path below the document root, e.g.
// ["body", "pre"] for Jetty or ["head", "title"] for generic pages.
type XMLPath struct {
	Path []string
}

// Scrape implements Strategy.
func (s XMLPath) Scrape(body []byte) (string, string) {
	root, dump, err := parseXML(body)
	if err != nil {
		return "", string(body)
	}
	if n := root.find(s.Path); n != nil {
		if text := n.text.String(); strings.TrimSpace(text) != "" {
			return text, ""
		}
	}
	return "", dump
}

// HTMLParagraph handles servlet-container pages that are HTML, not XML:
// <p><b>message</b> <u>reason</u></p>.
type HTMLParagraph struct {
	Label string
}

// Scrape implements Strategy.
func (s HTMLParagraph) Scrape(body []byte) (string, string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err == nil {
		label := strings.ToLower(s.Label)
		var reason string
		doc.Find("body p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			children := p.Children()
			if children.Length() < 2 {
				return true
			}
			if !strings.Contains(strings.ToLower(children.First().Text()), label) {
				return true
			}
			reason = children.Eq(1).Text()
			return false
		})
		if strings.TrimSpace(reason) != "" {
			return reason, ""
		}
	}
	return "", htmlPolicy.Sanitize(string(body))
}

// htmlPolicy drops scripts, styles and unsafe markup while keeping the page
// structure readable in the dump.
var htmlPolicy = bluemonday.UGCPolicy()

// node is the minimal element tree needed for path lookups.
type node struct {
	name     string
	children []*node
	text     strings.Builder
}

func (n *node) find(path []string) *node {
	cur := n
	for _, name := range path {
		var next *node
		for _, c := range cur.children {
			if c.name == name {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// parseXML builds the element tree and re-serialises the document
// (namespaces, declarations, comments and doctype dropped) for the dump.
func parseXML(body []byte) (*node, string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	var out bytes.Buffer
	enc := xml.NewEncoder(&out)

	var root *node
	var stack []*node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local}
			if len(stack) == 0 {
				if root != nil {
					return nil, "", errors.New("multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			}
			stack = append(stack, n)
			if err := enc.EncodeToken(localStart(t)); err != nil {
				return nil, "", err
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			if err := enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: t.Name.Local}}); err != nil {
				return nil, "", err
			}
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			// Only the text before the first child element counts.
			if top := stack[len(stack)-1]; len(top.children) == 0 {
				top.text.Write(t)
			}
			if err := enc.EncodeToken(t.Copy()); err != nil {
				return nil, "", err
			}
		}
	}
	if root == nil {
		return nil, "", errors.New("no root element")
	}
	if err := enc.Flush(); err != nil {
		return nil, "", err
	}
	return root, collapseEmpty(out.String()), nil
}

var emptyElemRegex = regexp.MustCompile(`<([\w.:-]+)((?:\s[^<>]*)?)></([\w.:-]+)>`)

// collapseEmpty writes empty elements in their short form ("<br/>"), which the
// encoder never emits on its own.
func collapseEmpty(doc string) string {
	return emptyElemRegex.ReplaceAllStringFunc(doc, func(m string) string {
		sub := emptyElemRegex.FindStringSubmatch(m)
		if sub[1] != sub[3] {
			return m
		}
		return "<" + sub[1] + sub[2] + "/>"
	})
}

func localStart(t xml.StartElement) xml.StartElement {
	s := xml.StartElement{Name: xml.Name{Local: t.Name.Local}}
	for _, a := range t.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		s.Attr = append(s.Attr, xml.Attr{Name: xml.Name{Local: a.Name.Local}, Value: a.Value})
	}
	return s
}

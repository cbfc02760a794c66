// Package message builds the XML update messages sent to the engine.
package message

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/solr/internal/codec"
	"github.com/kailas-cloud/solr/internal/sanitize"
)

// BoostField is the document key interpreted as the document-level boost.
const BoostField = "boost"

// Field is one named value of a document. Value may be a sequence.
type Field struct {
	Name  string
	Value any
}

// Doc is an ordered list of fields plus an optional document boost.
type Doc struct {
	Fields []Field
	Boost  float64
}

// Boosts holds per-field and per-entry boost weights.
//
// Values is keyed by field name, then by the entry's wire text. An entry boost
// takes precedence over the field boost for the same field.
type Boosts struct {
	Fields map[string]float64
	Values map[string]map[string]float64
}

func (b Boosts) lookup(field, wire string) (float64, bool) {
	if byEntry, ok := b.Values[field]; ok {
		if w, ok := byEntry[wire]; ok {
			return w, true
		}
	}
	w, ok := b.Fields[field]
	return w, ok
}

// BuildAdd renders docs as an <add> message.
// commitWithin is written in whole milliseconds when positive.
func BuildAdd(docs []Doc, boosts Boosts, commitWithin time.Duration) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)

	add := xml.StartElement{Name: xml.Name{Local: "add"}}
	if commitWithin > 0 {
		add.Attr = append(add.Attr, attr("commitWithin", strconv.FormatInt(commitWithin.Milliseconds(), 10)))
	}
	if err := enc.EncodeToken(add); err != nil {
		return nil, fmt.Errorf("encode add: %w", err)
	}

	for i := range docs {
		if err := encodeDoc(enc, &docs[i], boosts); err != nil {
			return nil, fmt.Errorf("doc %d: %w", i, err)
		}
	}

	if err := enc.EncodeToken(add.End()); err != nil {
		return nil, fmt.Errorf("encode add: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("flush add: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeDoc(enc *xml.Encoder, d *Doc, boosts Boosts) error {
	start := xml.StartElement{Name: xml.Name{Local: "doc"}}
	docBoost := ""
	if d.Boost > 0 {
		docBoost = formatBoost(d.Boost)
	}
	for _, f := range d.Fields {
		if f.Name != BoostField || codec.IsNull(f.Value) {
			continue
		}
		w, err := codec.ToWire(f.Value)
		if err != nil {
			return fmt.Errorf("document boost: %w", err)
		}
		docBoost = w
	}
	if docBoost != "" {
		start.Attr = append(start.Attr, attr("boost", docBoost))
	}

	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("encode doc: %w", err)
	}
	for _, f := range d.Fields {
		if f.Name == BoostField {
			continue
		}
		if err := encodeField(enc, f, boosts); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("encode doc: %w", err)
	}
	return nil
}

func encodeField(enc *xml.Encoder, f Field, boosts Boosts) error {
	values := []any{f.Value}
	if codec.IsSequence(f.Value) {
		values = codec.Entries(f.Value)
	}

	for _, v := range values {
		if codec.IsNull(v) {
			continue
		}
		text, err := codec.ToWire(v)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		text = sanitize.String(text)

		el := xml.StartElement{
			Name: xml.Name{Local: "field"},
			Attr: []xml.Attr{attr("name", f.Name)},
		}
		if w, ok := boosts.lookup(f.Name, text); ok {
			el.Attr = append(el.Attr, attr("boost", formatBoost(w)))
		}
		if err := enc.EncodeElement(text, el); err != nil {
			return fmt.Errorf("encode field %q: %w", f.Name, err)
		}
	}
	return nil
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func formatBoost(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

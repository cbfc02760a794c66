package message

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/solr/internal/domain"
)

// Delete renders a delete-by-id or delete-by-query message.
// Exactly one of id and query must be set.
func Delete(id, query string) ([]byte, error) {
	switch {
	case id == "" && query == "":
		return nil, domain.NewInvalidArgument(`you must specify "id" or "query"`)
	case id != "" && query != "":
		return nil, domain.NewInvalidArgument(`you may only specify "id" or "query", not both`)
	case id != "":
		return DeleteIDs([]string{id})
	default:
		return wrap("delete", "query", []string{query})
	}
}

// DeleteIDs renders one delete message for several ids.
func DeleteIDs(ids []string) ([]byte, error) {
	if len(ids) == 0 {
		return nil, domain.NewInvalidArgument("no ids to delete")
	}
	for _, id := range ids {
		if id == "" {
			return nil, domain.NewInvalidArgument("empty id")
		}
	}
	return wrap("delete", "id", ids)
}

// Commit renders a commit directive; expungeDeletes is written only when set.
func Commit(expungeDeletes *bool) []byte {
	if expungeDeletes == nil {
		return []byte("<commit/>")
	}
	return []byte(`<commit expungeDeletes="` + strconv.FormatBool(*expungeDeletes) + `"/>`)
}

// Optimize renders an optimize directive; maxSegments is written when positive.
func Optimize(maxSegments int) []byte {
	if maxSegments <= 0 {
		return []byte("<optimize/>")
	}
	return []byte(`<optimize maxSegments="` + strconv.Itoa(maxSegments) + `"/>`)
}

func wrap(root, child string, texts []string) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	start := xml.StartElement{Name: xml.Name{Local: root}}
	if err := enc.EncodeToken(start); err != nil {
		return nil, fmt.Errorf("encode %s: %w", root, err)
	}
	for _, t := range texts {
		if err := enc.EncodeElement(t, xml.StartElement{Name: xml.Name{Local: child}}); err != nil {
			return nil, fmt.Errorf("encode %s: %w", child, err)
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return nil, fmt.Errorf("encode %s: %w", root, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("flush %s: %w", root, err)
	}
	return buf.Bytes(), nil
}

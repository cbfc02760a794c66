package solr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/kailas-cloud/solr/internal/params"
	"github.com/kailas-cloud/solr/internal/result"
)

// ExtractRequest is a rich document (PDF, HTML, office formats) to run
// through the engine's extracting handler.
type ExtractRequest struct {
	// FileName is sent with the upload; the extractor uses it as a type hint.
	FileName string
	Content  io.Reader
	// Index stores the extracted document instead of only returning it.
	Index bool
	Extra url.Values
}

// Extract uploads a document and returns its extracted text and metadata.
func (c *Client) Extract(ctx context.Context, req ExtractRequest) (ex *Extracted, err error) {
	start := time.Now()
	defer func() { c.obs.observe(ctx, "extract", start, err) }()

	if req.FileName == "" {
		return nil, invalid("extract", "a file name is required")
	}
	if req.Content == nil {
		return nil, invalid("extract", "content is required")
	}

	body, contentType, err := multipartFile(req.FileName, req.Content)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	p := url.Values{}
	p.Set("extractOnly", boolText(!req.Index))
	p.Set("lowernames", "true")
	p.Set("wt", "json")
	params.Merge(p, req.Extra)

	resp, err := c.d.Post(ctx, "update/extract?"+params.Encode(p), body, contentType)
	if err != nil {
		return nil, err
	}
	return result.ParseExtract(resp, req.FileName)
}

func multipartFile(name string, r io.Reader) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, "", fmt.Errorf("read content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func boolText(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

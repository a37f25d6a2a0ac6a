package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Upload posts a multipart form with one file part plus plain fields. The
// encoded form is buffered so the 401 replay can resend it byte for byte;
// multipart bodies are never enveloped.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, fileField, fileName string, content io.Reader) (*Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("client: multipart field %s: %w", k, err)
		}
	}
	fw, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, content); err != nil {
		return nil, fmt.Errorf("client: multipart copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        path,
		RawBody:     buf.Bytes(),
		ContentType: w.FormDataContentType(),
	})
}

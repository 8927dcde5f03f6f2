package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"
)

// ImportResult summarises POST /import.
type ImportResult struct {
	Success  bool `json:"success" yaml:"success"`
	Imported int  `json:"imported" yaml:"imported"`
	Skipped  int  `json:"skipped" yaml:"skipped"`
	Errors   int  `json:"errors" yaml:"errors"`
	Total    int  `json:"total" yaml:"total"`
}

// BackupFilename is the name the server uses for a backup taken on the day of t.
func BackupFilename(t time.Time) string {
	return fmt.Sprintf("dream-journal-backup-%s.json", t.Format("20060102"))
}

// Backup streams the JSON export into w and returns the suggested file name.
func (c *Client) Backup(ctx context.Context, w io.Writer) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/backup", nil, nil, "")
	if err != nil {
		return "", err
	}
	resp, err := c.send(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("api: read backup: %w", err)
	}

	name := BackupFilename(c.now())
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			name = filepath.Base(params["filename"])
		}
	}
	return name, nil
}

// Import uploads a backup file as multipart form field "file".
func (c *Client) Import(ctx context.Context, name string, r io.Reader) (*ImportResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(name))
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "/import", nil, pr, mw.FormDataContentType())
	if err != nil {
		_ = pr.Close()
		return nil, err
	}
	resp, err := c.send(req)
	if err != nil {
		_ = pr.Close()
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	out := &ImportResult{}
	if err := decodeJSON(resp.Body, out); err != nil {
		return nil, &RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("decode import result: %v", err), Err: err}
	}
	return out, nil
}

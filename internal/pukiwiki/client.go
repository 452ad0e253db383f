// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pukiwiki talks to a PukiWiki script endpoint: it fetches edit
// forms, submits page edits, posts attachments, and reads the
// recent-changes listing.
package pukiwiki

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/pukisync/internal/httputil"
	"github.com/pdiddy/pukisync/pkg/types"
)

// Client issues requests against a single wiki endpoint. A Client serves
// one command at a time.
type Client struct {
	cfg        types.WikiConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// New returns a Client for cfg. When hc is nil a client with cfg.Timeout
// and a cookie jar is created, so the digest fetch and the edit submit
// share a session. A nil logger discards output.
func New(cfg types.WikiConfig, hc *http.Client, logger *slog.Logger) *Client {
	if hc == nil {
		jar, _ := cookiejar.New(nil)
		hc = &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{cfg: cfg, httpClient: hc, logger: logger}
}

// EditURL returns the edit-form URL for page.
func (c *Client) EditURL(page string) string {
	q := url.Values{"cmd": {"edit"}, "page": {page}}
	return withQuery(c.cfg.Endpoint, q.Encode())
}

// RecentChangesURL returns the URL of the listing used to find the latest page.
func (c *Client) RecentChangesURL() string {
	return withQuery(c.cfg.Endpoint, url.QueryEscape(c.cfg.User))
}

// FetchEditForm GETs the edit page for page and extracts its form fields.
// Non-2xx responses and transport failures are NetworkErrors.
func (c *Client) FetchEditForm(ctx context.Context, page string) (*EditForm, error) {
	body, err := c.get(ctx, "fetch edit form", c.EditURL(page))
	if err != nil {
		return nil, err
	}
	return ParseEditForm(page, bytes.NewReader(body))
}

// FetchRecentChanges GETs the recent-changes listing and returns its HTML.
func (c *Client) FetchRecentChanges(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "fetch recent changes", c.RecentChangesURL())
}

// SubmitEdit posts page.Content as the new source of page.Name, authorized
// by page.Digest. The HTTP status is returned as-is; only transport failures
// are errors.
func (c *Client) SubmitEdit(ctx context.Context, page types.WikiPage) (int, error) {
	form := url.Values{
		"encode_hint": {c.cfg.EncodeHint},
		"cmd":         {"edit"},
		"page":        {page.Name},
		"digest":      {page.Digest},
		"msg":         {page.Content},
		"write":       {c.cfg.SubmitLabel},
		"notimestamp": {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return 0, &NetworkError{Op: "submit edit", URL: c.cfg.Endpoint, Err: err}
	}
	httputil.Drain(resp)
	return resp.StatusCode, nil
}

// UploadAttachment streams the file at path to page as a multipart
// attach-plugin post, reporting bytes sent to progress (which may be nil).
// The HTTP status is returned as-is; transport and file errors are errors.
func (c *Client) UploadAttachment(ctx context.Context, page, path string, progress httputil.ProgressFunc) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening attachment: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat attachment: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("attachment %s is a directory", path)
	}

	head, tail, contentType, err := c.attachEnvelope(page, filepath.Base(path))
	if err != nil {
		return 0, err
	}

	total := int64(len(head)) + info.Size() + int64(len(tail))
	body := httputil.NewProgressReader(
		io.MultiReader(bytes.NewReader(head), f, bytes.NewReader(tail)),
		total, progress,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return 0, &NetworkError{Op: "upload attachment", URL: c.cfg.Endpoint, Err: err}
	}
	httputil.Drain(resp)
	return resp.StatusCode, nil
}

// attachEnvelope renders the multipart body around the file bytes: head
// holds the text fields and the file part header, tail the closing boundary.
func (c *Client) attachEnvelope(page, filename string) (head, tail []byte, contentType string, err error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := [][2]string{
		{"plugin", "attach"},
		{"pcmd", "post"},
		{"refer", page},
		{"pass", c.cfg.Password},
		{"encode_hint", c.cfg.EncodeHint},
	}
	for _, kv := range fields {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return nil, nil, "", fmt.Errorf("writing field %s: %w", kv[0], err)
		}
	}
	// CreateFormFile sets Content-Type: application/octet-stream.
	if _, err := mw.CreateFormFile("attach_file", filename); err != nil {
		return nil, nil, "", fmt.Errorf("writing file header: %w", err)
	}
	head = bytes.Clone(buf.Bytes())

	buf.Reset()
	if err := mw.Close(); err != nil {
		return nil, nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	tail = bytes.Clone(buf.Bytes())

	return head, tail, mw.FormDataContentType(), nil
}

func (c *Client) get(ctx context.Context, op, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		return nil, &NetworkError{Op: op, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, URL: rawURL, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("wiki request failed",
			"method", req.Method, "url", req.URL.String(), "error", err)
		return nil, err
	}
	c.logger.Debug("wiki request",
		"method", req.Method, "url", req.URL.String(),
		"status", resp.StatusCode, "duration", time.Since(start))
	return resp, nil
}

// withQuery appends rawQuery to endpoint, respecting an existing query string.
func withQuery(endpoint, rawQuery string) string {
	if rawQuery == "" {
		return endpoint
	}
	if strings.Contains(endpoint, "?") {
		return endpoint + "&" + rawQuery
	}
	return endpoint + "?" + rawQuery
}

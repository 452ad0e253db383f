// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the wiki client.
package httputil

import (
	"fmt"
	"io"
	"net/http"
)

// ProgressFunc receives the number of bytes sent so far and the total
// expected. sent never decreases between calls for one transfer.
type ProgressFunc func(sent, total int64)

// ProgressReader wraps a request body and reports each read to a
// ProgressFunc. A nil Progress is allowed.
type ProgressReader struct {
	r        io.Reader
	total    int64
	sent     int64
	progress ProgressFunc
}

// NewProgressReader returns a reader over r that reports against total.
func NewProgressReader(r io.Reader, total int64, progress ProgressFunc) *ProgressReader {
	return &ProgressReader{r: r, total: total, progress: progress}
}

// Read implements io.Reader.
func (p *ProgressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.progress != nil {
			p.progress(p.sent, p.total)
		}
	}
	return n, err
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// Drain discards and closes a response body so the connection can be reused.
func Drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// TextProgress returns a ProgressFunc that rewrites a single status line on w.
func TextProgress(w io.Writer) ProgressFunc {
	return func(sent, total int64) {
		pct := 100.0
		if total > 0 {
			pct = float64(sent) / float64(total) * 100
		}
		fmt.Fprintf(w, "\rprogress: %d/%d bytes (%.1f%%)", sent, total, pct)
	}
}

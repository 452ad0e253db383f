// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download saves a wiki page's editable source to a local file.
package download

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/pukisync/internal/localfs"
	"github.com/pdiddy/pukisync/internal/pukiwiki"
)

// PageFetcher fetches the edit form of a page.
type PageFetcher interface {
	FetchEditForm(ctx context.Context, page string) (*pukiwiki.EditForm, error)
}

// Options controls where pages are written.
type Options struct {
	// OutDir is the directory receiving <page>.txt (default ".").
	OutDir string
}

// Download fetches page's source and writes it verbatim to
// <OutDir>/<page>.txt, overwriting any existing file. No file is written
// when the edit form has no msg textarea.
func Download(ctx context.Context, f PageFetcher, page string, opts Options, w io.Writer) (string, error) {
	if page == "" {
		return "", fmt.Errorf("page name is required")
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}

	form, err := f.FetchEditForm(ctx, page)
	if err != nil {
		return "", err
	}
	content, err := form.Content()
	if err != nil {
		return "", err
	}

	path, err := localfs.WritePage(outDir, page, content)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(w, "saved: %s -> %s\n", page, path)
	return path, nil
}

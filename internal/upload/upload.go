// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upload pushes a local page source to the wiki, posts the
// attachments it references, and archives the source file.
package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/pdiddy/pukisync/internal/httputil"
	"github.com/pdiddy/pukisync/internal/localfs"
	"github.com/pdiddy/pukisync/internal/pukiwiki"
	"github.com/pdiddy/pukisync/internal/refs"
	"github.com/pdiddy/pukisync/pkg/types"
)

// Wiki is the subset of the wiki client used by Upload.
type Wiki interface {
	FetchEditForm(ctx context.Context, page string) (*pukiwiki.EditForm, error)
	SubmitEdit(ctx context.Context, page types.WikiPage) (int, error)
	UploadAttachment(ctx context.Context, page, path string, progress httputil.ProgressFunc) (int, error)
}

// SubmitError reports an edit that the wiki did not accept with HTTP 200.
type SubmitError struct {
	Page       string
	StatusCode int
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("page update failed for %q: HTTP %d", e.Page, e.StatusCode)
}

// Options controls archiving and progress output.
type Options struct {
	// ArchiveDir receives the source file after a successful edit
	// (default types.DefaultArchiveDir).
	ArchiveDir string

	// NoArchive leaves the source file in place.
	NoArchive bool

	// Progress receives attachment byte counts. May be nil.
	Progress httputil.ProgressFunc

	// Now supplies the archive timestamp (default time.Now).
	Now func() time.Time
}

// Upload runs the page upload sequence for the source file at path:
// read, collect attachment references, fetch a fresh digest, submit the
// edit, post each attachment, archive the source. Any failure before the
// edit is accepted stops the sequence; attachment failures are recorded
// in the result and do not.
func Upload(ctx context.Context, wiki Wiki, path string, opts Options, w io.Writer) (types.UploadResult, error) {
	page := localfs.PageName(path)
	result := types.UploadResult{Page: page}

	content, err := localfs.ReadText(path)
	if err != nil {
		return result, err
	}
	attachments := refs.Parse(content)

	form, err := wiki.FetchEditForm(ctx, page)
	if err != nil {
		return result, err
	}
	digest, err := form.Digest()
	if err != nil {
		return result, err
	}

	// The digest must come from this fetch, immediately before the submit.
	status, err := wiki.SubmitEdit(ctx, types.WikiPage{Name: page, Content: content, Digest: digest})
	if err != nil {
		return result, err
	}
	if status != http.StatusOK {
		return result, &SubmitError{Page: page, StatusCode: status}
	}
	fmt.Fprintf(w, "updated: %s\n", page)

	srcDir := filepath.Dir(path)
	for _, ref := range attachments {
		result.Attachments = append(result.Attachments, uploadOne(ctx, wiki, page, srcDir, ref, opts.Progress, w))
	}
	if len(attachments) > 0 {
		fmt.Fprintf(w, "attachments: %d uploaded, %d failed\n", result.Uploaded(), result.Failed())
	}

	if opts.NoArchive {
		return result, nil
	}
	archiveDir := opts.ArchiveDir
	if archiveDir == "" {
		archiveDir = types.DefaultArchiveDir
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	dest, err := localfs.Archive(path, archiveDir, now())
	if err != nil {
		return result, err
	}
	result.ArchivedPath = dest
	fmt.Fprintf(w, "archived: %s -> %s\n", path, dest)

	return result, nil
}

// uploadOne posts a single attachment and reports its outcome on w.
func uploadOne(ctx context.Context, wiki Wiki, page, srcDir, ref string, progress httputil.ProgressFunc, w io.Writer) types.AttachmentStatus {
	st := types.AttachmentStatus{Path: ref}
	name := filepath.Base(ref)

	fmt.Fprintf(w, "uploading: %s\n", name)
	code, err := wiki.UploadAttachment(ctx, page, filepath.Join(srcDir, ref), progress)
	if progress != nil {
		fmt.Fprintln(w)
	}
	st.StatusCode = code

	switch {
	case err != nil:
		st.Err = err.Error()
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
	case code != http.StatusOK:
		st.Err = fmt.Sprintf("HTTP %d", code)
		fmt.Fprintf(w, "failed:  %s (HTTP %d)\n", name, code)
	default:
		fmt.Fprintf(w, "uploaded: %s\n", name)
	}
	return st
}

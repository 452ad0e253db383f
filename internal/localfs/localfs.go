// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package localfs reads and writes the local copies of wiki pages and
// archives uploaded sources under a timestamped name.
package localfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/natefinch/atomic"
)

// PageExt is the extension of a downloaded page file.
const PageExt = ".txt"

// TimestampLayout formats the archive suffix as YYYYMMDD_HHMMSS.
const TimestampLayout = "20060102_150405"

// ReadError reports a source file that could not be read as text.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// errInvalidUTF8 is wrapped in a ReadError for sources that are not UTF-8.
var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// PageName derives the wiki page name from a source path by taking the
// base name and stripping its extension ("notes/Foo.txt" -> "Foo").
func PageName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ReadText reads path as UTF-8 text.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &ReadError{Path: path, Err: errInvalidUTF8}
	}
	return string(data), nil
}

// PagePath returns the file a page is downloaded to under dir.
func PagePath(dir, page string) string {
	return filepath.Join(dir, page+PageExt)
}

// WritePage writes content verbatim to <dir>/<page>.txt, replacing any
// existing file atomically. Page names containing "/" produce nested
// directories, which are created as needed.
func WritePage(dir, page, content string) (string, error) {
	if page == "" {
		return "", fmt.Errorf("empty page name")
	}
	if !filepath.IsLocal(page + PageExt) {
		return "", fmt.Errorf("page name %q escapes the output directory", page)
	}

	path := PagePath(dir, page)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ArchiveName returns the archived file name for base at time t:
// "report.txt" becomes "report_20240102_030405.txt".
func ArchiveName(base string, t time.Time) string {
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return name + "_" + t.Format(TimestampLayout) + ext
}

// Archive moves src into archiveDir under its timestamped name, creating
// archiveDir if needed, and returns the destination path.
func Archive(src, archiveDir string, t time.Time) (string, error) {
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("creating archive directory %s: %w", archiveDir, err)
	}

	dest := filepath.Join(archiveDir, ArchiveName(filepath.Base(src), t))
	if err := move(src, dest); err != nil {
		return "", fmt.Errorf("archiving %s: %w", src, err)
	}
	return dest, nil
}

// move renames src to dest, falling back to copy and remove when they are
// on different filesystems.
func move(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return err
	}
	in.Close()
	return os.Remove(src)
}

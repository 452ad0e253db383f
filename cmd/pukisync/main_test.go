// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wikiStub serves the recent-changes listing, edit forms and posts,
// recording the requests it saw.
type wikiStub struct {
	mu       sync.Mutex
	requests []string
}

func (s *wikiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.RawQuery == "RecentChanges":
		s.requests = append(s.requests, "recent")
		fmt.Fprint(w, `<ul><li><a id="list_9" href="?Latest">LatestPage</a></li></ul>`)
	case r.Method == http.MethodGet && r.URL.Query().Get("cmd") == "edit":
		page := r.URL.Query().Get("page")
		s.requests = append(s.requests, "edit:"+page)
		fmt.Fprintf(w, `<input name="digest" value="d1"><textarea name="msg">source of %s</textarea>`, page)
	case r.Method == http.MethodPost:
		s.requests = append(s.requests, "post")
	default:
		http.NotFound(w, r)
	}
}

func (s *wikiStub) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func setupWiki(t *testing.T) *wikiStub {
	t.Helper()
	stub := &wikiStub{}
	ts := httptest.NewServer(stub)
	t.Cleanup(ts.Close)

	t.Setenv("WIKI_ENDPOINT", ts.URL+"/index.php")
	t.Setenv("WIKI_USER", "RecentChanges")
	t.Setenv("WIKI_PASS", "pw")
	return stub
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDownload_NamedPageSkipsRecentChanges(t *testing.T) {
	stub := setupWiki(t)
	dir := t.TempDir()

	out, err := execute(t, "d", "FrontPage", "--out-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "saved: FrontPage")
	assert.Equal(t, []string{"edit:FrontPage"}, stub.Requests())

	data, err := os.ReadFile(filepath.Join(dir, "FrontPage.txt"))
	require.NoError(t, err)
	assert.Equal(t, "source of FrontPage", string(data))
}

func TestDownload_DefaultsToLatestPage(t *testing.T) {
	stub := setupWiki(t)
	dir := t.TempDir()

	out, err := execute(t, "download", "--out-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "latest: LatestPage")
	assert.Equal(t, []string{"recent", "edit:LatestPage"}, stub.Requests())
	assert.FileExists(t, filepath.Join(dir, "LatestPage.txt"))
}

func TestUpload_DoesNotResolveLatestPage(t *testing.T) {
	stub := setupWiki(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "Notes.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	out, err := execute(t, "u", src, "--archive-dir", filepath.Join(dir, "_old"), "--quiet")
	require.NoError(t, err)
	assert.Contains(t, out, "updated: Notes")
	assert.Equal(t, []string{"edit:Notes", "post"}, stub.Requests())
	assert.NoFileExists(t, src)
}

func TestMissingEndpointFails(t *testing.T) {
	t.Setenv("WIKI_ENDPOINT", "")
	_, err := execute(t, "download", "FrontPage", "--out-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WIKI_ENDPOINT")
}

func TestConfigMasksPassword(t *testing.T) {
	setupWiki(t)
	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "endpoint: http://")
	assert.Contains(t, out, "********")
	assert.False(t, strings.Contains(out, ": pw\n"), "password must not be printed")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pukisync dev\n", out)
}

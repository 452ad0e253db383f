// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pukiwiki

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Form field names on the PukiWiki edit page.
const (
	FieldMsg    = "msg"
	FieldDigest = "digest"
)

// EditForm holds what was found on a page's edit form. Either field may be
// absent; callers ask for the one they need.
type EditForm struct {
	Page string

	content    string
	digest     string
	hasContent bool
	hasDigest  bool
}

// Content returns the decoded text of the msg textarea, or a ParseError
// if the form has none.
func (f *EditForm) Content() (string, error) {
	if !f.hasContent {
		return "", &ParseError{Page: f.Page, Field: FieldMsg}
	}
	return f.content, nil
}

// Digest returns the value of the digest input, or a ParseError if the
// form has none.
func (f *EditForm) Digest() (string, error) {
	if !f.hasDigest {
		return "", &ParseError{Page: f.Page, Field: FieldDigest}
	}
	return f.digest, nil
}

// ParseEditForm extracts the msg textarea and digest input from an edit
// page. The first element of each kind wins.
func ParseEditForm(page string, r io.Reader) (*EditForm, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing edit page for %q: %w", page, err)
	}

	form := &EditForm{Page: page}

	if ta := doc.Find(`textarea[name="` + FieldMsg + `"]`).First(); ta.Length() > 0 {
		form.content = ta.Text()
		form.hasContent = true
	}

	if in := doc.Find(`input[name="` + FieldDigest + `"]`).First(); in.Length() > 0 {
		form.digest, form.hasDigest = in.Attr("value")
	}

	return form, nil
}

// ParseLatestPage returns the trimmed text of the anchor with the given id
// in a recent-changes listing. An absent anchor, or one with no text, is an
// ElementNotFoundError.
func ParseLatestPage(anchorID string, r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing recent changes: %w", err)
	}

	a := doc.Find(`a[id="` + anchorID + `"]`).First()
	if a.Length() == 0 {
		return "", &ElementNotFoundError{ID: anchorID}
	}
	name := strings.TrimSpace(a.Text())
	if name == "" {
		return "", &ElementNotFoundError{ID: anchorID}
	}
	return name, nil
}

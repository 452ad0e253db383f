// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pukiwiki

import "fmt"

// NetworkError reports a transport failure or a non-2xx response to a GET.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Op, e.URL, e.StatusCode)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a form field missing from an edit page.
type ParseError struct {
	Page  string
	Field string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field not found: %s (page %q)", e.Field, e.Page)
}

// ElementNotFoundError reports the recent-changes anchor missing from the listing.
type ElementNotFoundError struct {
	ID string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element not found: a#%s", e.ID)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WikiPage is the editable state of a page as served by the edit form.
// Nothing here outlives the command that fetched it.
type WikiPage struct {
	// Name is the wiki page name (e.g. "FrontPage").
	Name string `json:"name" yaml:"name"`

	// Content is the raw page source from the msg textarea.
	Content string `json:"content" yaml:"content"`

	// Digest is the server-issued version token. It is only valid for the
	// page version it was fetched against.
	Digest string `json:"digest" yaml:"digest"`
}

// AttachmentStatus records the outcome of one attachment upload.
type AttachmentStatus struct {
	// Path is the attachment path as written in the page source.
	Path string `json:"path" yaml:"path"`

	// StatusCode is the HTTP status returned by the wiki, or zero when the
	// request never completed.
	StatusCode int `json:"status_code" yaml:"status_code"`

	// Err is the failure message, empty on success.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// OK reports whether the attachment was accepted.
func (s AttachmentStatus) OK() bool {
	return s.Err == "" && s.StatusCode == 200
}

// UploadResult holds the outcome of a page upload.
type UploadResult struct {
	// Page is the page name derived from the source file.
	Page string `json:"page" yaml:"page"`

	// Attachments lists each referenced file in source order.
	Attachments []AttachmentStatus `json:"attachments" yaml:"attachments"`

	// ArchivedPath is where the source file was moved, empty when archiving
	// was skipped.
	ArchivedPath string `json:"archived_path,omitempty" yaml:"archived_path,omitempty"`
}

// Uploaded returns the number of attachments the wiki accepted.
func (r UploadResult) Uploaded() int {
	n := 0
	for _, a := range r.Attachments {
		if a.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of attachments that were not accepted.
func (r UploadResult) Failed() int {
	return len(r.Attachments) - r.Uploaded()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults applied by the config loader when a key is unset.
const (
	DefaultArchiveDir     = "_old"
	DefaultRecentAnchorID = "list_9"
	DefaultEncodeHint     = "ぷ"
	DefaultSubmitLabel    = "ページの更新"
)

// HTTPConfig holds shared HTTP settings for requests to the wiki.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "pukisync/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// WikiConfig is the process-wide configuration, built once at startup and
// passed by value into each component.
type WikiConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the wiki script URL (e.g. "https://example.org/wiki/index.php").
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// User is the query string used to fetch the recent-changes listing.
	User string `json:"user" yaml:"user"`

	// Password authorizes attachment uploads.
	Password string `json:"pass,omitempty" yaml:"pass,omitempty"`

	// ArchiveDir receives uploaded source files (default "_old").
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir"`

	// RecentAnchorID is the id of the anchor naming the most recent page
	// in the recent-changes listing (default "list_9").
	RecentAnchorID string `json:"recent_anchor_id" yaml:"recent_anchor_id"`

	// EncodeHint is the charset probe field sent with every form post.
	EncodeHint string `json:"encode_hint" yaml:"encode_hint"`

	// SubmitLabel is the value of the "write" button sent with an edit.
	SubmitLabel string `json:"submit_label" yaml:"submit_label"`
}

// Masked returns a copy of the config with the password hidden, suitable
// for printing.
func (c WikiConfig) Masked() WikiConfig {
	if c.Password != "" {
		c.Password = "********"
	}
	return c
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config assembles the wiki configuration once at startup from a
// .env file, the environment, an optional YAML config file, and the
// secrets directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/pukisync/internal/secrets"
	"github.com/pdiddy/pukisync/pkg/types"
)

// Viper keys.
const (
	KeyEndpoint       = "endpoint"
	KeyUser           = "user"
	KeyPassword       = "pass"
	KeyArchiveDir     = "archive_dir"
	KeyRecentAnchorID = "recent_anchor_id"
	KeyEncodeHint     = "encode_hint"
	KeySubmitLabel    = "submit_label"
	KeyTimeout        = "timeout"
	KeyUserAgent      = "user_agent"
)

// EnvPrefix applies to keys without an explicit binding (e.g. PUKISYNC_TIMEOUT).
const EnvPrefix = "PUKISYNC"

// envBindings keeps the established WIKI_* variable names.
var envBindings = map[string]string{
	KeyEndpoint: "WIKI_ENDPOINT",
	KeyUser:     "WIKI_USER",
	KeyPassword: "WIKI_PASS",
}

// ErrNoEndpoint is returned by Validate when no endpoint is configured.
var ErrNoEndpoint = errors.New("wiki endpoint is not set (WIKI_ENDPOINT)")

// ErrNoUser is returned by RequireUser when no user is configured.
var ErrNoUser = errors.New("wiki user is not set (WIKI_USER)")

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Bind registers defaults and environment bindings on v.
func Bind(v *viper.Viper, userAgent string) error {
	v.SetDefault(KeyArchiveDir, types.DefaultArchiveDir)
	v.SetDefault(KeyRecentAnchorID, types.DefaultRecentAnchorID)
	v.SetDefault(KeyEncodeHint, types.DefaultEncodeHint)
	v.SetDefault(KeySubmitLabel, types.DefaultSubmitLabel)
	v.SetDefault(KeyTimeout, 0)
	v.SetDefault(KeyUserAgent, userAgent)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}
	return nil
}

// Load reads the resolved values from v into a WikiConfig. Secrets fill in
// the endpoint, user, and password when v leaves them empty.
func Load(v *viper.Viper, s secrets.Set) types.WikiConfig {
	return types.WikiConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   v.GetDuration(KeyTimeout),
			UserAgent: v.GetString(KeyUserAgent),
		},
		Endpoint:       firstNonEmpty(v.GetString(KeyEndpoint), s.Get(secrets.KeyEndpoint, "")),
		User:           firstNonEmpty(v.GetString(KeyUser), s.Get(secrets.KeyUser, "")),
		Password:       firstNonEmpty(v.GetString(KeyPassword), s.Get(secrets.KeyPassword, "")),
		ArchiveDir:     v.GetString(KeyArchiveDir),
		RecentAnchorID: v.GetString(KeyRecentAnchorID),
		EncodeHint:     v.GetString(KeyEncodeHint),
		SubmitLabel:    v.GetString(KeySubmitLabel),
	}
}

// Validate checks that cfg can reach a wiki: the endpoint must be an
// absolute http or https URL.
func Validate(cfg types.WikiConfig) error {
	if cfg.Endpoint == "" {
		return ErrNoEndpoint
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid wiki endpoint %q: %w", cfg.Endpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid wiki endpoint %q: must be an absolute http(s) URL", cfg.Endpoint)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("invalid timeout %v: must not be negative", cfg.Timeout)
	}
	return nil
}

// RequireUser reports ErrNoUser when the recent-changes query is unset.
func RequireUser(cfg types.WikiConfig) error {
	if cfg.User == "" {
		return ErrNoUser
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

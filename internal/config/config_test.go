// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pukisync/internal/secrets"
	"github.com/pdiddy/pukisync/pkg/types"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	require.NoError(t, Bind(v, "pukisync/test"))
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WIKI_ENDPOINT", "")
	t.Setenv("WIKI_USER", "")
	t.Setenv("WIKI_PASS", "")

	cfg := Load(newViper(t), nil)
	assert.Equal(t, types.DefaultArchiveDir, cfg.ArchiveDir)
	assert.Equal(t, types.DefaultRecentAnchorID, cfg.RecentAnchorID)
	assert.Equal(t, types.DefaultEncodeHint, cfg.EncodeHint)
	assert.Equal(t, types.DefaultSubmitLabel, cfg.SubmitLabel)
	assert.Equal(t, "pukisync/test", cfg.UserAgent)
	assert.Zero(t, cfg.Timeout)
	assert.Empty(t, cfg.Endpoint)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("WIKI_ENDPOINT", "https://wiki.example.org/index.php")
	t.Setenv("WIKI_USER", "RecentChanges")
	t.Setenv("WIKI_PASS", "envpass")
	t.Setenv("PUKISYNC_TIMEOUT", "30s")
	t.Setenv("PUKISYNC_ARCHIVE_DIR", "archive")

	cfg := Load(newViper(t), secrets.Set{secrets.KeyPassword: "filepass"})
	assert.Equal(t, "https://wiki.example.org/index.php", cfg.Endpoint)
	assert.Equal(t, "RecentChanges", cfg.User)
	assert.Equal(t, "envpass", cfg.Password, "environment wins over secrets")
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "archive", cfg.ArchiveDir)
}

func TestLoad_SecretsFallback(t *testing.T) {
	t.Setenv("WIKI_ENDPOINT", "")
	t.Setenv("WIKI_USER", "")
	t.Setenv("WIKI_PASS", "")

	cfg := Load(newViper(t), secrets.Set{
		secrets.KeyEndpoint: "https://s.example.org/",
		secrets.KeyUser:     "Someone",
		secrets.KeyPassword: "filepass",
	})
	assert.Equal(t, "https://s.example.org/", cfg.Endpoint)
	assert.Equal(t, "Someone", cfg.User)
	assert.Equal(t, "filepass", cfg.Password)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("WIKI_ENDPOINT", "")
	t.Setenv("WIKI_PASS", "")

	path := filepath.Join(t.TempDir(), "pukisync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`endpoint: https://file.example.org/index.php
pass: yamlpass
recent_anchor_id: list_0
submit_label: Update
`), 0o644))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg := Load(v, nil)
	assert.Equal(t, "https://file.example.org/index.php", cfg.Endpoint)
	assert.Equal(t, "yamlpass", cfg.Password)
	assert.Equal(t, "list_0", cfg.RecentAnchorID)
	assert.Equal(t, "Update", cfg.SubmitLabel)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("WIKI_USER=FromDotEnv\nWIKI_PASS=dotpass\n"), 0o644))

	t.Setenv("WIKI_PASS", "already-set")
	// t.Setenv restores the original value; Unsetenv makes it absent for godotenv.
	t.Setenv("WIKI_USER", "")
	os.Unsetenv("WIKI_USER")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "FromDotEnv", os.Getenv("WIKI_USER"))
	assert.Equal(t, "already-set", os.Getenv("WIKI_PASS"), ".env does not override the environment")

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		timeout  time.Duration
		wantErr  bool
	}{
		{"https endpoint", "https://wiki.example.org/index.php", 0, false},
		{"http endpoint with port", "http://localhost:8080/", 0, false},
		{"empty endpoint", "", 0, true},
		{"relative endpoint", "index.php", 0, true},
		{"ftp scheme", "ftp://wiki.example.org/", 0, true},
		{"negative timeout", "https://wiki.example.org/", -time.Second, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := types.WikiConfig{Endpoint: tt.endpoint}
			cfg.Timeout = tt.timeout
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.ErrorIs(t, Validate(types.WikiConfig{}), ErrNoEndpoint)
}

func TestRequireUser(t *testing.T) {
	assert.ErrorIs(t, RequireUser(types.WikiConfig{}), ErrNoUser)
	assert.NoError(t, RequireUser(types.WikiConfig{User: "RecentChanges"}))
}

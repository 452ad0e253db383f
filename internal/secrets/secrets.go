// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads wiki credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Recognized key files: wiki-pass, wiki-user, wiki-endpoint.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Key file names looked up by the config loader.
const (
	KeyPassword = "wiki-pass"
	KeyUser     = "wiki-user"
	KeyEndpoint = "wiki-endpoint"
)

// Set maps key file names to their trimmed values.
type Set map[string]string

// Get returns the value for key, or fallback when the key is absent.
func (s Set) Get(key, fallback string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return fallback
}

// Load reads all files in dir and returns a Set of filename to trimmed contents.
// A missing directory is not an error; Load returns an empty Set.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	set := make(Set)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		name := entry.Name()
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			set[name] = value
		}
	}

	return set, nil
}

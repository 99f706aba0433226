// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the trimmed file contents are the value.
//
// Known keys: textgen-api-key, redis-password.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	KeyTextGenAPIKey = "textgen-api-key"
	KeyRedisPassword = "redis-password"
)

// Set is a loaded collection of secrets.
type Set map[string]string

// Load reads all files in dir and returns them keyed by filename.
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

	s := make(Set)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			s[entry.Name()] = value
		}
	}
	return s, nil
}

// Resolve returns explicit when it is set, otherwise the secret stored under
// key, otherwise the value of the environment variable env.
func (s Set) Resolve(explicit, key, env string) string {
	if explicit != "" {
		return explicit
	}
	if v, ok := s[key]; ok {
		return v
	}
	if env != "" {
		return strings.TrimSpace(os.Getenv(env))
	}
	return ""
}

// Names returns the loaded key names without their values.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	return names
}

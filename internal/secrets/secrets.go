// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads store credentials from a directory of plain-text
// files. The filename is the key and the trimmed contents are the value.
//
// Recognized keys: mongo-username, mongo-password.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/scoreid-export/pkg/types"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

const (
	KeyMongoUsername = "mongo-username"
	KeyMongoPassword = "mongo-password"
)

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory is
// not an error. Unreadable files are reported on warn and skipped.
func Load(dir string, warn io.Writer) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return Secrets{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			s[name] = v
		}
	}
	return s, nil
}

// Keys returns the loaded key names in sorted order.
func (s Secrets) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyTo fills missing store credentials. Values already set on cfg
// (from flags or environment) win.
func (s Secrets) ApplyTo(cfg *types.StoreConfig) {
	if cfg.Username == "" {
		cfg.Username = s[KeyMongoUsername]
	}
	if cfg.Password == "" {
		cfg.Password = s[KeyMongoPassword]
	}
}

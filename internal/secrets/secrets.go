// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads registry credentials from a directory of plain-text
// files. Each file is one secret: the filename is the key and the trimmed
// contents are the value.
//
// Recognised keys: pls-api-token.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// APITokenKey names the file holding the registry bearer token.
const APITokenKey = "pls-api-token"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error. Dotfiles, subdirectories and
// empty files are skipped; unreadable files are logged and skipped.
func Load(dir string, logger *slog.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if logger != nil {
				logger.Warn("could not read secret", "name", name, "error", err)
			}
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// APIToken returns override when set, otherwise the pls-api-token secret.
func APIToken(secrets map[string]string, override string) string {
	if override != "" {
		return override
	}
	return secrets[APITokenKey]
}

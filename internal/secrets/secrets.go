// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: notion-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// NotionTokenKey is the file holding the Notion integration token.
const NotionTokenKey = "notion-token"

// FromSecretsArg is the token argument that selects the stored token.
const FromSecretsArg = "-"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty
// map. Unreadable files are logged and skipped.
func Load(dir string, log logrus.FieldLogger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if log != nil {
				log.WithError(err).WithField("secret", name).Warn("could not read secret")
			}
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// ResolveToken returns arg unless it is FromSecretsArg, in which case the
// token is read from dir.
func ResolveToken(arg, dir string, log logrus.FieldLogger) (string, error) {
	if arg != FromSecretsArg {
		return arg, nil
	}
	s, err := Load(dir, log)
	if err != nil {
		return "", err
	}
	token, ok := s[NotionTokenKey]
	if !ok {
		return "", fmt.Errorf("no %s found in %s", NotionTokenKey, dir)
	}
	return token, nil
}

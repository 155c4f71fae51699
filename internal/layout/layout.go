// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout maps page slugs and publish dates to paths in the
// static-site content tree.
package layout

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	indexFile   = "index.md"
	postDir     = "post"
	defaultSlug = "default"

	// dateOnlyLen is the length of a "2006-01-02" date. Longer values carry
	// a time component.
	dateOnlyLen = len(time.DateOnly)
)

// OutputTarget is where one page is written. Dir holds the document and
// doubles as the page's asset directory.
type OutputTarget struct {
	DocPath string
	Dir     string
}

// NormalizeSlug strips dots, trims surrounding slashes and lowercases slug.
// standalone reports whether slug started with "/", which places the page
// outside the dated post tree.
func NormalizeSlug(slug string) (normalized string, standalone bool) {
	standalone = strings.HasPrefix(slug, "/")
	normalized = strings.ToLower(strings.Trim(strings.ReplaceAll(slug, ".", ""), "/"))
	return normalized, standalone
}

// RelativePath returns the document path relative to the content root,
// using forward slashes.
func RelativePath(slug, date string) (string, error) {
	s, standalone := NormalizeSlug(slug)

	if standalone {
		return joinSlash(s, indexFile), nil
	}

	if date == "" {
		if s == "" {
			s = defaultSlug
		}
		return joinSlash(s, indexFile), nil
	}

	t, err := parseDate(date)
	if err != nil {
		return "", err
	}
	datePath := fmt.Sprintf("%s/%d/%d/%d", postDir, t.Year(), int(t.Month()), t.Day())
	return joinSlash(datePath, s, indexFile), nil
}

// Resolve returns the output target for a page under root.
func Resolve(root, slug, date string) (OutputTarget, error) {
	rel, err := RelativePath(slug, date)
	if err != nil {
		return OutputTarget{}, err
	}
	doc := filepath.Join(root, filepath.FromSlash(rel))
	return OutputTarget{DocPath: doc, Dir: filepath.Dir(doc)}, nil
}

// parseDate reads a date-time when the value has a time component, else a
// plain date. Date-times keep their own offset so the calendar day matches
// what the author entered.
func parseDate(date string) (time.Time, error) {
	if len(date) > dateOnlyLen {
		t, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing date-time %q: %w", date, err)
		}
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", date, err)
	}
	return t, nil
}

func joinSlash(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}

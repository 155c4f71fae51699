// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package asset downloads files referenced by a page into the page's output
// directory under deterministic names.
package asset

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Fetcher opens a remote resource for reading.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// Materializer persists remote resources next to the document that
// references them.
type Materializer struct {
	fs      afero.Fs
	fetcher Fetcher
	log     logrus.FieldLogger
	onSaved func()
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithLogger sets the logger used for download diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Materializer) { m.log = log }
}

// WithSavedHook registers a callback invoked after each successful save.
func WithSavedHook(fn func()) Option {
	return func(m *Materializer) { m.onSaved = fn }
}

// NewMaterializer returns a Materializer writing to fs.
func NewMaterializer(fs afero.Fs, fetcher Fetcher, opts ...Option) *Materializer {
	m := &Materializer{
		fs:      fs,
		fetcher: fetcher,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize downloads rawURL into dir and returns the local file name.
// The name depends only on the URL (see LocalName). A second request for
// the same name downloads again and overwrites the file.
func (m *Materializer) Materialize(ctx context.Context, rawURL, dir string) (string, error) {
	name, err := LocalName(rawURL)
	if err != nil {
		return "", err
	}

	if err := m.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	body, err := m.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", name, err)
	}
	defer body.Close()

	dest := filepath.Join(dir, name)
	if err := writeAtomic(m.fs, dest, body); err != nil {
		return "", fmt.Errorf("saving %s: %w", name, err)
	}

	m.log.WithFields(logrus.Fields{"asset": name, "dir": dir}).Debug("asset saved")
	if m.onSaved != nil {
		m.onSaved()
	}
	return name, nil
}

// writeAtomic streams r into a temporary file beside dest and renames it
// into place.
func writeAtomic(fs afero.Fs, dest string, r io.Reader) error {
	tmp, err := afero.TempFile(fs, filepath.Dir(dest), ".asset-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if copyErr != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := fs.Rename(tmpPath, dest); err != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// LocalName derives the local file name for rawURL: the name of the
// directory containing the file, plus the file's extension. Notion stores
// each upload as <uuid>/<original name>, so the directory is unique while
// the leaf often is not.
func LocalName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing asset URL: %w", err)
	}

	p := strings.TrimSuffix(u.Path, "/")
	leaf := path.Base(p)
	if leaf == "." || leaf == "/" || leaf == "" {
		return "", fmt.Errorf("asset URL %q has no file name", rawURL)
	}

	base := path.Base(path.Dir(p))
	if base == "." || base == "/" {
		base = strings.TrimSuffix(leaf, path.Ext(leaf))
	}

	ext := strings.TrimPrefix(path.Ext(leaf), ".")
	if ext == "" {
		return base, nil
	}
	return base + "." + ext, nil
}

// DisplayName returns the decoded file name at the end of rawURL, used as a
// link label when a block has no caption.
func DisplayName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return path.Base(u.Path)
}

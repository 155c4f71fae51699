// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		wantSlug       string
		wantStandalone bool
	}{
		{"plain", "hello-world", "hello-world", false},
		{"dots stripped", "v1.2.release", "v12release", false},
		{"lowercased", "Hello-World", "hello-world", false},
		{"trailing slash", "hello/", "hello", false},
		{"leading slash standalone", "/About", "about", true},
		{"nested standalone", "/docs/Intro/", "docs/intro", true},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, standalone := NormalizeSlug(tt.slug)
			assert.Equal(t, tt.wantSlug, got)
			assert.Equal(t, tt.wantStandalone, standalone)
		})
	}
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		name string
		slug string
		date string
		want string
	}{
		{"standalone ignores date", "/about", "2024-01-05", "about/index.md"},
		{"standalone without date", "/About.Me", "", "aboutme/index.md"},
		{"no date no slug", "", "", "default/index.md"},
		{"no date with slug", "notes", "", "notes/index.md"},
		{"date without slug", "", "2021-03-04", "post/2021/3/4/index.md"},
		{"date with slug", "hello-world", "2024-01-05", "post/2024/1/5/hello-world/index.md"},
		{"two digit month and day", "x", "2023-11-23", "post/2023/11/23/x/index.md"},
		{"date-time", "talk", "2022-12-31T10:15:00.000+09:00", "post/2022/12/31/talk/index.md"},
		{"date-time keeps its own offset", "late", "2022-12-31T23:30:00.000-05:00", "post/2022/12/31/late/index.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelativePath(tt.slug, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelativePath_BadDate(t *testing.T) {
	_, err := RelativePath("x", "2024-13-45")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")

	_, err = RelativePath("x", "yesterday at noon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date-time")
}

func TestResolve(t *testing.T) {
	got, err := Resolve("content", "hello-world", "2024-01-05")
	require.NoError(t, err)

	want := filepath.Join("content", "post", "2024", "1", "5", "hello-world")
	assert.Equal(t, filepath.Join(want, "index.md"), got.DocPath)
	assert.Equal(t, want, got.Dir)
}

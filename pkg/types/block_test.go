// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range AllKinds() {
		assert.Equal(t, k, ParseKind(k.String()), "kind %d", k)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"paragraph", KindParagraph},
		{"heading_2", KindHeading2},
		{"to_do", KindToDo},
		{"column_list", KindColumnList},
		{"child_page", KindChildPage},
		{"synced_block", KindUnsupported},
		{"", KindUnsupported},
		{"Paragraph", KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKind(tt.tag))
		})
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	assert.Equal(t, "unsupported", Kind(-1).String())
	assert.Equal(t, "unsupported", kindCount.String())
}

func TestAllKindsHaveTags(t *testing.T) {
	kinds := AllKinds()
	assert.Len(t, kinds, int(kindCount))
	seen := map[string]bool{}
	for _, k := range kinds {
		tag := k.String()
		assert.NotEmpty(t, tag)
		assert.False(t, seen[tag], "duplicate tag %q", tag)
		seen[tag] = true
	}
}

func TestDefaultExportConfig(t *testing.T) {
	cfg := DefaultExportConfig()
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, "Publish", cfg.PublishProperty)
	assert.Equal(t, []string{"Description", "Tags", "Categories", "Draft", "Keywords", "Aliases"}, cfg.Properties)
	assert.True(t, cfg.ContinueOnError)
	assert.Equal(t, 1, cfg.Workers)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/notion-export/internal/asset"
	"github.com/pdiddy/notion-export/pkg/types"
)

// writeMedia renders image, file, audio and video blocks. Hosted files are
// downloaded next to the document; external URLs are linked as they are.
func (r *Renderer) writeMedia(ctx context.Context, b *strings.Builder, blk *types.Block, dir string) error {
	p, ok := blk.Payload.(types.MediaPayload)
	if !ok || p.Source.URL == "" {
		return nil
	}

	caption := FormatRuns(p.Caption)
	label, target := caption, p.Source.URL

	if p.Source.Hosted {
		name, err := r.assets.Materialize(ctx, p.Source.URL, dir)
		if err != nil {
			return fmt.Errorf("%s block %s: %w", blk.Kind, blk.ID, err)
		}
		target = "./" + name
		if label == "" {
			label = asset.DisplayName(p.Source.URL)
		}
	} else if label == "" {
		label = p.Source.URL
	}

	if blk.Kind == types.KindImage {
		b.WriteString("!")
	}
	b.WriteString(link(label, target) + "\n")
	if caption != "" {
		b.WriteString("\n" + caption + "\n")
	}
	return nil
}

// CompactID returns a block or page ID without dashes, the form Notion uses
// in page URLs.
func CompactID(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		return strings.ReplaceAll(u.String(), "-", "")
	}
	return strings.ReplaceAll(id, "-", "")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/notion-export/pkg/types"
)

// cellBreak replaces hard line breaks inside table cells, which cannot span
// physical lines.
const cellBreak = "</br>"

// writeTable fetches the table's rows and writes a GFM table. The first row
// is the header; the separator row follows it.
func (r *Renderer) writeTable(ctx context.Context, b *strings.Builder, blk *types.Block) error {
	if !blk.HasChildren {
		return nil
	}
	p, _ := blk.Payload.(types.TablePayload)

	rows, err := r.loader.LoadChildren(ctx, blk.ID)
	if err != nil {
		return fmt.Errorf("loading rows of table %s: %w", blk.ID, err)
	}

	header := true
	for _, row := range rows {
		rp, ok := row.Payload.(types.TableRowPayload)
		if row.Kind != types.KindTableRow || !ok {
			continue
		}

		cells := make([]string, len(rp.Cells))
		for i, c := range rp.Cells {
			cells[i] = formatCell(c)
		}
		b.WriteString("|" + strings.Join(cells, "|") + "|\n")

		if header {
			width := p.Width
			if width <= 0 {
				width = len(cells)
			}
			b.WriteString("|" + strings.Repeat(" --- |", width) + "\n")
			header = false
		}
	}
	return nil
}

// formatCell escapes literal pipes so cell text cannot split the row.
func formatCell(runs []types.TextRun) string {
	text := FormatRuns(runs)
	text = strings.ReplaceAll(text, hardBreak, cellBreak)
	return strings.ReplaceAll(text, "|", `\|`)
}

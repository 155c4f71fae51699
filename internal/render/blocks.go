// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/notion-export/pkg/types"
)

// Blocks with a missing or unexpected payload write nothing.

func writeText(b *strings.Builder, blk *types.Block, indent int, marker string) {
	p, ok := blk.Payload.(types.TextPayload)
	if !ok {
		return
	}
	writeLine(b, indent, marker, FormatRuns(p.Runs))
}

func writeToDo(b *strings.Builder, blk *types.Block, indent int) {
	p, ok := blk.Payload.(types.ToDoPayload)
	if !ok {
		return
	}
	marker := "- [ ] "
	if p.Checked {
		marker = "- [x] "
	}
	writeLine(b, indent, marker, FormatRuns(p.Runs))
}

func writeLine(b *strings.Builder, indent int, marker, text string) {
	b.WriteString(strings.Repeat("\t", indent))
	b.WriteString(marker)
	b.WriteString(text)
	b.WriteString("\n")
}

func writeCallout(b *strings.Builder, blk *types.Block) {
	p, ok := blk.Payload.(types.CalloutPayload)
	if !ok {
		return
	}
	b.WriteString("<aside>\n")
	b.WriteString(p.Emoji)
	b.WriteString(FormatRuns(p.Runs))
	b.WriteString("\n</aside>\n\n")
}

func writeCode(b *strings.Builder, blk *types.Block) {
	p, ok := blk.Payload.(types.CodePayload)
	if !ok {
		return
	}
	b.WriteString("```" + p.Language + "\n")
	b.WriteString(FormatRuns(p.Runs) + "\n")
	b.WriteString("```\n")
	if caption := FormatRuns(p.Caption); caption != "" {
		b.WriteString(caption + "\n")
	}
}

// writeLink renders bookmarks, link previews and embeds. The caption, when
// present, is the label.
func writeLink(b *strings.Builder, blk *types.Block) {
	p, ok := blk.Payload.(types.LinkPayload)
	if !ok || p.URL == "" {
		return
	}
	label := FormatRuns(p.Caption)
	if label == "" {
		label = p.URL
	}
	b.WriteString(link(label, p.URL) + "\n")
}

func (r *Renderer) writeChildPage(b *strings.Builder, blk *types.Block) {
	if !blk.HasChildren {
		return
	}
	p, _ := blk.Payload.(types.ChildPagePayload)
	b.WriteString(link(p.Title, r.pageLinkBase+CompactID(blk.ID)) + "\n")
}

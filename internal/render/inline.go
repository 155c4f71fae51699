// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/notion-export/pkg/types"
)

// hardBreak is the Markdown hard line break.
const hardBreak = "  \n"

// FormatRuns renders rich text runs as inline Markdown. Every newline in
// the combined output becomes a hard line break, including newlines inside
// a single run.
func FormatRuns(runs []types.TextRun) string {
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(formatRun(run))
	}
	return strings.ReplaceAll(b.String(), "\n", hardBreak)
}

// formatRun renders one run. Annotations wrap in a fixed order, code
// innermost and strikethrough outermost, so {bold, code} is **`x`**.
func formatRun(run types.TextRun) string {
	switch run.Kind {
	case types.RunText:
		text := run.Text
		if run.Link != "" {
			text = link(text, run.Link)
		}
		a := run.Annotations
		if a.Code {
			text = "`" + text + "`"
		}
		if a.Bold {
			text = "**" + text + "**"
		}
		if a.Italic {
			text = "*" + text + "*"
		}
		if a.Strikethrough {
			text = "~~" + text + "~~"
		}
		return text

	case types.RunEquation:
		return "$" + run.Text + "$"

	case types.RunMention:
		switch run.Mention {
		case types.MentionUser:
			return run.Text
		case types.MentionPage:
			label := run.Text
			if label == "" {
				label = run.Link
			}
			return link(label, run.Link)
		default:
			return ""
		}
	}
	return ""
}

func link(label, target string) string {
	return "[" + label + "](" + target + ")"
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/notion-export/pkg/types"
)

func styled(text string, a types.Annotations) types.TextRun {
	return types.TextRun{Kind: types.RunText, Text: text, Annotations: a}
}

func TestFormatRuns(t *testing.T) {
	tests := []struct {
		name string
		runs []types.TextRun
		want string
	}{
		{"empty", nil, ""},
		{"plain", []types.TextRun{types.Plain("Hi")}, "Hi"},
		{"bold", []types.TextRun{styled("x", types.Annotations{Bold: true})}, "**x**"},
		{"italic", []types.TextRun{styled("x", types.Annotations{Italic: true})}, "*x*"},
		{"strikethrough", []types.TextRun{styled("x", types.Annotations{Strikethrough: true})}, "~~x~~"},
		{"code", []types.TextRun{styled("x", types.Annotations{Code: true})}, "`x`"},
		{"bold code nests code innermost", []types.TextRun{styled("x", types.Annotations{Bold: true, Code: true})}, "**`x`**"},
		{
			"all annotations",
			[]types.TextRun{styled("x", types.Annotations{Bold: true, Italic: true, Strikethrough: true, Code: true})},
			"~~***`x`***~~",
		},
		{
			"link inside annotations",
			[]types.TextRun{{Kind: types.RunText, Text: "site", Link: "https://example.com", Annotations: types.Annotations{Bold: true}}},
			"**[site](https://example.com)**",
		},
		{
			"concatenates runs",
			[]types.TextRun{types.Plain("a "), styled("b", types.Annotations{Italic: true}), types.Plain(" c")},
			"a *b* c",
		},
		{
			"equation ignores annotations and link",
			[]types.TextRun{{Kind: types.RunEquation, Text: `e=mc^2`, Link: "https://x", Annotations: types.Annotations{Bold: true}}},
			"$e=mc^2$",
		},
		{
			"user mention is verbatim",
			[]types.TextRun{{Kind: types.RunMention, Mention: types.MentionUser, Text: "@Ada", Annotations: types.Annotations{Bold: true}}},
			"@Ada",
		},
		{
			"page mention links",
			[]types.TextRun{{Kind: types.RunMention, Mention: types.MentionPage, Text: "Other page", Link: "https://www.notion.so/abc"}},
			"[Other page](https://www.notion.so/abc)",
		},
		{
			"page mention without text uses link as label",
			[]types.TextRun{{Kind: types.RunMention, Mention: types.MentionPage, Link: "https://www.notion.so/abc"}},
			"[https://www.notion.so/abc](https://www.notion.so/abc)",
		},
		{
			"other mention is empty",
			[]types.TextRun{types.Plain("on "), {Kind: types.RunMention, Mention: types.MentionOther, Text: "2024-01-01"}},
			"on ",
		},
		{
			"newline inside run becomes hard break",
			[]types.TextRun{types.Plain("line1\nline2")},
			"line1  \nline2",
		},
		{
			"newline across runs",
			[]types.TextRun{types.Plain("a\n"), styled("b", types.Annotations{Bold: true})},
			"a  \n**b**",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRuns(tt.runs))
		})
	}
}

func TestFormatRuns_StableAcrossCalls(t *testing.T) {
	runs := []types.TextRun{styled("x", types.Annotations{Bold: true, Code: true})}
	for i := 0; i < 20; i++ {
		assert.Equal(t, "**`x`**", FormatRuns(runs))
	}
}


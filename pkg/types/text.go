// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RunKind distinguishes the three kinds of rich text run.
type RunKind int

const (
	RunText RunKind = iota
	RunEquation
	RunMention
)

// MentionKind distinguishes what a mention run refers to.
type MentionKind int

const (
	MentionOther MentionKind = iota
	MentionUser
	MentionPage
)

// Annotations are the independent style flags of a text run.
type Annotations struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Code          bool
}

// TextRun is one inline-formatted fragment of rich text.
type TextRun struct {
	Kind RunKind

	// Text is the display text, or the TeX expression for equations.
	Text string

	// Link is the hyperlink target; empty when the run is not linked.
	Link string

	Annotations Annotations

	// Mention is only meaningful when Kind is RunMention.
	Mention MentionKind
}

// Plain returns a plain, unannotated text run.
func Plain(text string) TextRun {
	return TextRun{Kind: RunText, Text: text}
}

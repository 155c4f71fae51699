// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the notion-export pipeline:
// the block tree read from Notion, inline text runs, page metadata, and the
// export configuration.
package types

// Kind identifies the type of a Block. The set is closed; remote type tags
// that are not listed here decode to KindUnsupported.
type Kind int

const (
	KindUnsupported Kind = iota
	KindParagraph
	KindHeading1
	KindHeading2
	KindHeading3
	KindBulletedListItem
	KindNumberedListItem
	KindToDo
	KindToggle
	KindQuote
	KindCallout
	KindCode
	KindDivider
	KindBookmark
	KindLinkPreview
	KindEmbed
	KindImage
	KindFile
	KindAudio
	KindVideo
	KindTable
	KindTableRow
	KindColumn
	KindColumnList
	KindChildPage

	// kindCount must stay last.
	kindCount
)

var kindTags = [kindCount]string{
	KindUnsupported:      "unsupported",
	KindParagraph:        "paragraph",
	KindHeading1:         "heading_1",
	KindHeading2:         "heading_2",
	KindHeading3:         "heading_3",
	KindBulletedListItem: "bulleted_list_item",
	KindNumberedListItem: "numbered_list_item",
	KindToDo:             "to_do",
	KindToggle:           "toggle",
	KindQuote:            "quote",
	KindCallout:          "callout",
	KindCode:             "code",
	KindDivider:          "divider",
	KindBookmark:         "bookmark",
	KindLinkPreview:      "link_preview",
	KindEmbed:            "embed",
	KindImage:            "image",
	KindFile:             "file",
	KindAudio:            "audio",
	KindVideo:            "video",
	KindTable:            "table",
	KindTableRow:         "table_row",
	KindColumn:           "column",
	KindColumnList:       "column_list",
	KindChildPage:        "child_page",
}

// String returns the Notion type tag for k.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unsupported"
	}
	return kindTags[k]
}

// ParseKind maps a Notion type tag to a Kind. Unknown tags yield
// KindUnsupported.
func ParseKind(tag string) Kind {
	for k, t := range kindTags {
		if t == tag {
			return Kind(k)
		}
	}
	return KindUnsupported
}

// AllKinds returns every Kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Block is one node of a page's content tree. Children are never embedded;
// when HasChildren is set they are fetched by ID.
type Block struct {
	ID          string
	Kind        Kind
	HasChildren bool
	Payload     Payload

	// RawType is the type tag as received, kept so unsupported kinds can be
	// reported by name.
	RawType string
}

// Payload holds the kind-specific fields of a Block.
type Payload interface {
	payload()
}

// TextPayload carries the text of paragraphs, headings, list items, toggles
// and quotes.
type TextPayload struct {
	Runs []TextRun
}

// ToDoPayload is a checklist item.
type ToDoPayload struct {
	Runs    []TextRun
	Checked bool
}

// CalloutPayload is a callout with an optional emoji icon.
type CalloutPayload struct {
	Runs  []TextRun
	Emoji string
}

// CodePayload is a fenced code block.
type CodePayload struct {
	Runs     []TextRun
	Caption  []TextRun
	Language string
}

// LinkPayload backs bookmarks, link previews and embeds.
type LinkPayload struct {
	URL     string
	Caption []TextRun
}

// FileSource points at either a Notion-hosted file or an external URL.
type FileSource struct {
	// Hosted is true for files stored by Notion. Their URLs are signed and
	// expire, so they must be downloaded.
	Hosted bool
	URL    string
}

// MediaPayload backs image, file, audio and video blocks.
type MediaPayload struct {
	Source  FileSource
	Caption []TextRun
}

// TablePayload describes a table. Rows are its children.
type TablePayload struct {
	Width           int
	HasColumnHeader bool
	HasRowHeader    bool
}

// TableRowPayload holds one row of cells.
type TableRowPayload struct {
	Cells [][]TextRun
}

// ChildPagePayload references a nested page.
type ChildPagePayload struct {
	Title string
}

func (TextPayload) payload()      {}
func (ToDoPayload) payload()      {}
func (CalloutPayload) payload()   {}
func (CodePayload) payload()      {}
func (LinkPayload) payload()      {}
func (MediaPayload) payload()     {}
func (TablePayload) payload()     {}
func (TableRowPayload) payload()  {}
func (ChildPagePayload) payload() {}

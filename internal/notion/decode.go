// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/notion-export/pkg/types"
)

// decodeBlock converts one block object. The payload lives under the key
// named by the block's type. A missing payload leaves Payload nil.
func decodeBlock(raw gjson.Result) types.Block {
	tag := raw.Get("type").String()
	b := types.Block{
		ID:          raw.Get("id").String(),
		Kind:        types.ParseKind(tag),
		HasChildren: raw.Get("has_children").Bool(),
		RawType:     tag,
	}

	body := raw.Get(tag)
	if !body.Exists() || !body.IsObject() {
		return b
	}

	switch b.Kind {
	case types.KindParagraph, types.KindHeading1, types.KindHeading2, types.KindHeading3,
		types.KindBulletedListItem, types.KindNumberedListItem, types.KindToggle, types.KindQuote:
		b.Payload = types.TextPayload{Runs: decodeRichText(body.Get("rich_text"))}
	case types.KindToDo:
		b.Payload = types.ToDoPayload{
			Runs:    decodeRichText(body.Get("rich_text")),
			Checked: body.Get("checked").Bool(),
		}
	case types.KindCallout:
		p := types.CalloutPayload{Runs: decodeRichText(body.Get("rich_text"))}
		if body.Get("icon.type").String() == "emoji" {
			p.Emoji = body.Get("icon.emoji").String()
		}
		b.Payload = p
	case types.KindCode:
		b.Payload = types.CodePayload{
			Runs:     decodeRichText(body.Get("rich_text")),
			Caption:  decodeRichText(body.Get("caption")),
			Language: body.Get("language").String(),
		}
	case types.KindBookmark, types.KindLinkPreview, types.KindEmbed:
		b.Payload = types.LinkPayload{
			URL:     body.Get("url").String(),
			Caption: decodeRichText(body.Get("caption")),
		}
	case types.KindImage, types.KindFile, types.KindAudio, types.KindVideo:
		src, ok := decodeFile(body)
		if ok {
			b.Payload = types.MediaPayload{Source: src, Caption: decodeRichText(body.Get("caption"))}
		}
	case types.KindTable:
		b.Payload = types.TablePayload{
			Width:           int(body.Get("table_width").Int()),
			HasColumnHeader: body.Get("has_column_header").Bool(),
			HasRowHeader:    body.Get("has_row_header").Bool(),
		}
	case types.KindTableRow:
		var cells [][]types.TextRun
		for _, cell := range body.Get("cells").Array() {
			cells = append(cells, decodeRichText(cell))
		}
		b.Payload = types.TableRowPayload{Cells: cells}
	case types.KindChildPage:
		b.Payload = types.ChildPagePayload{Title: body.Get("title").String()}
	}
	return b
}

// decodeFile reads a file object of type "file" (hosted) or "external".
func decodeFile(obj gjson.Result) (types.FileSource, bool) {
	switch obj.Get("type").String() {
	case "file":
		return types.FileSource{Hosted: true, URL: obj.Get("file.url").String()}, true
	case "external":
		return types.FileSource{URL: obj.Get("external.url").String()}, true
	default:
		return types.FileSource{}, false
	}
}

// decodeRichText converts a rich text array into runs.
func decodeRichText(arr gjson.Result) []types.TextRun {
	var runs []types.TextRun
	for _, rt := range arr.Array() {
		run := types.TextRun{
			Text: rt.Get("plain_text").String(),
			Link: rt.Get("href").String(),
			Annotations: types.Annotations{
				Bold:          rt.Get("annotations.bold").Bool(),
				Italic:        rt.Get("annotations.italic").Bool(),
				Strikethrough: rt.Get("annotations.strikethrough").Bool(),
				Code:          rt.Get("annotations.code").Bool(),
			},
		}
		switch rt.Get("type").String() {
		case "equation":
			run.Kind = types.RunEquation
			run.Text = rt.Get("equation.expression").String()
			run.Link = ""
		case "mention":
			run.Kind = types.RunMention
			switch rt.Get("mention.type").String() {
			case "user":
				run.Mention = types.MentionUser
			case "page":
				run.Mention = types.MentionPage
			default:
				run.Mention = types.MentionOther
			}
		default:
			run.Kind = types.RunText
			if !rt.Get("plain_text").Exists() {
				run.Text = rt.Get("text.content").String()
			}
			if run.Link == "" {
				run.Link = rt.Get("text.link.url").String()
			}
		}
		runs = append(runs, run)
	}
	return runs
}

// plainText concatenates the plain text of a rich text array.
func plainText(arr gjson.Result) string {
	var b strings.Builder
	for _, rt := range arr.Array() {
		if pt := rt.Get("plain_text"); pt.Exists() {
			b.WriteString(pt.String())
			continue
		}
		b.WriteString(rt.Get("text.content").String())
	}
	return b.String()
}

// decodePage builds the export metadata of a page object. Slug and date
// are read from the configured property names; the title comes from the
// title-typed property whatever its name.
func decodePage(raw gjson.Result, cfg types.ExportConfig) types.PageMeta {
	meta := types.PageMeta{
		ID:         raw.Get("id").String(),
		Properties: make(map[string]types.Property),
	}

	raw.Get("properties").ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		prop := decodeProperty(value)
		meta.Properties[name] = prop
		if prop.Type == types.PropertyTitle && meta.Title == "" {
			meta.Title = prop.Text
		}
		return true
	})

	if p, ok := meta.Properties[cfg.SlugProperty]; ok {
		meta.Slug = p.Text
	}
	if p, ok := meta.Properties[cfg.DateProperty]; ok && p.Type == types.PropertyDate {
		meta.PublishDate = p.Date
	}

	if cover := raw.Get("cover"); cover.IsObject() {
		if src, ok := decodeFile(cover); ok && src.URL != "" {
			meta.Cover = &src
		}
	}
	return meta
}

func decodeProperty(value gjson.Result) types.Property {
	switch t := types.PropertyType(value.Get("type").String()); t {
	case types.PropertyTitle:
		return types.Property{Type: t, Text: plainText(value.Get("title"))}
	case types.PropertyRichText:
		return types.Property{Type: t, Text: plainText(value.Get("rich_text"))}
	case types.PropertyCheckbox:
		p := types.Property{Type: t}
		if cb := value.Get("checkbox"); cb.Exists() && cb.Type != gjson.Null {
			checked := cb.Bool()
			p.Checkbox = &checked
		}
		return p
	case types.PropertyMultiSelect:
		p := types.Property{Type: t}
		for _, opt := range value.Get("multi_select").Array() {
			if name := opt.Get("name").String(); name != "" {
				p.MultiSelect = append(p.MultiSelect, name)
			}
		}
		return p
	case types.PropertyDate:
		return types.Property{Type: t, Date: value.Get("date.start").String()}
	default:
		return types.Property{Type: types.PropertyOther}
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package frontmatter builds the YAML header written at the top of each
// exported document.
package frontmatter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/notion-export/pkg/types"
)

const delimiter = "---\n"

// AssetMaterializer downloads a hosted file into dir and returns its local
// name.
type AssetMaterializer interface {
	Materialize(ctx context.Context, rawURL, dir string) (string, error)
}

// Builder assembles front matter from page metadata.
type Builder struct {
	assets     AssetMaterializer
	properties []string
}

// NewBuilder returns a Builder that emits the named optional properties in
// the given order after the fixed title, date and thumbnail fields.
func NewBuilder(assets AssetMaterializer, properties []string) *Builder {
	return &Builder{
		assets:     assets,
		properties: append([]string(nil), properties...),
	}
}

// Build returns the front matter for meta, including both delimiters. A
// hosted cover image is downloaded into dir. Fields without a value are
// left out.
func (fb *Builder) Build(ctx context.Context, meta types.PageMeta, dir string) (string, error) {
	var b strings.Builder
	b.WriteString(delimiter)

	if meta.Title != "" {
		fmt.Fprintf(&b, "title: %q\n", meta.Title)
	}
	if meta.PublishDate != "" {
		fmt.Fprintf(&b, "date: %q\n", meta.PublishDate)
	}

	thumb, err := fb.thumbnail(ctx, meta.Cover, dir)
	if err != nil {
		return "", err
	}
	if thumb != "" {
		fmt.Fprintf(&b, "thumbnail: %q\n", thumb)
	}

	for _, name := range fb.properties {
		prop, ok := meta.Properties[name]
		if !ok {
			continue
		}
		if v, ok := FormatProperty(prop); ok {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToLower(name), v)
		}
	}

	b.WriteString(delimiter)
	return b.String(), nil
}

func (fb *Builder) thumbnail(ctx context.Context, cover *types.FileSource, dir string) (string, error) {
	if cover == nil || cover.URL == "" {
		return "", nil
	}
	if !cover.Hosted {
		return cover.URL, nil
	}
	name, err := fb.assets.Materialize(ctx, cover.URL, dir)
	if err != nil {
		return "", fmt.Errorf("cover image: %w", err)
	}
	return "./" + name, nil
}

// FormatProperty renders a property value as a YAML scalar or flow
// sequence. ok is false when the property has no value to emit.
func FormatProperty(p types.Property) (value string, ok bool) {
	switch p.Type {
	case types.PropertyCheckbox:
		if p.Checkbox == nil {
			return "", false
		}
		return strconv.FormatBool(*p.Checkbox), true
	case types.PropertyMultiSelect:
		if len(p.MultiSelect) == 0 {
			return "", false
		}
		quoted := make([]string, len(p.MultiSelect))
		for i, opt := range p.MultiSelect {
			quoted[i] = strconv.Quote(opt)
		}
		return "[" + strings.Join(quoted, ",") + "]", true
	case types.PropertyRichText, types.PropertyTitle:
		if p.Text == "" {
			return "", false
		}
		return strconv.Quote(p.Text), true
	case types.PropertyDate:
		if p.Date == "" {
			return "", false
		}
		return strconv.Quote(p.Date), true
	default:
		return "", false
	}
}

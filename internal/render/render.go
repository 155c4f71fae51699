// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a Notion block tree into Markdown.
//
// Rendering is a recursive walk over sibling lists. The only state is the
// indentation depth and a lookahead to the next rendered sibling, which
// decides whether a blank line separates two blocks: consecutive list-like
// blocks (bulleted, numbered, to-do, toggle) stay together so they form one
// Markdown list, everything else is followed by a blank line.
package render

import (
	"context"
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/notion-export/pkg/types"
)

// DefaultPageLinkBase prefixes child page links.
const DefaultPageLinkBase = "https://www.notion.so/"

// ChildLoader returns the complete, ordered child list of a block.
type ChildLoader interface {
	LoadChildren(ctx context.Context, blockID string) ([]types.Block, error)
}

// AssetMaterializer downloads a hosted file into dir and returns its local
// name.
type AssetMaterializer interface {
	Materialize(ctx context.Context, rawURL, dir string) (string, error)
}

// listLike holds the kinds that render as list items and are not separated
// by blank lines when adjacent.
var listLike = mapset.NewSet(
	types.KindBulletedListItem,
	types.KindNumberedListItem,
	types.KindToDo,
	types.KindToggle,
)

// Renderer converts blocks to Markdown. It is safe for concurrent use when
// its loader and materializer are.
type Renderer struct {
	loader        ChildLoader
	assets        AssetMaterializer
	log           logrus.FieldLogger
	pageLinkBase  string
	onUnsupported func(kind string)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Renderer) { r.log = log }
}

// WithPageLinkBase overrides DefaultPageLinkBase.
func WithPageLinkBase(base string) Option {
	return func(r *Renderer) {
		if base != "" {
			r.pageLinkBase = base
		}
	}
}

// WithUnsupportedHook registers a callback invoked with the type tag of
// every skipped unsupported block.
func WithUnsupportedHook(fn func(kind string)) Option {
	return func(r *Renderer) { r.onUnsupported = fn }
}

// New returns a Renderer that fetches children through loader and saves
// hosted files through assets.
func New(loader ChildLoader, assets AssetMaterializer, opts ...Option) *Renderer {
	r := &Renderer{
		loader:       loader,
		assets:       assets,
		log:          logrus.StandardLogger(),
		pageLinkBase: DefaultPageLinkBase,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders blocks at the given indentation depth. Hosted files are
// saved into dir, which must be the directory of the output document.
func (r *Renderer) Render(ctx context.Context, blocks []types.Block, dir string, indent int) (string, error) {
	var b strings.Builder
	if err := r.renderBlocks(ctx, &b, blocks, dir, indent); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderBlocks renders one sibling list. The last rendered block of the list
// always ends with a blank line.
func (r *Renderer) renderBlocks(ctx context.Context, b *strings.Builder, blocks []types.Block, dir string, indent int) error {
	for i := range blocks {
		blk := &blocks[i]

		if isSilent(blk.Kind) {
			if blk.Kind == types.KindUnsupported {
				r.reportUnsupported(blk)
				// The block itself is dropped but its content is not.
				if err := r.splice(ctx, b, blk, dir, indent); err != nil {
					return err
				}
			}
			continue
		}

		next := nextRendered(blocks, i+1)

		if isStructural(blk.Kind) {
			if err := r.splice(ctx, b, blk, dir, 0); err != nil {
				return err
			}
			continue
		}

		if err := r.renderBlock(ctx, b, blk, dir, indent); err != nil {
			return err
		}

		if blk.HasChildren && descends(blk.Kind) {
			children, err := r.loader.LoadChildren(ctx, blk.ID)
			if err != nil {
				return fmt.Errorf("loading children of %s: %w", blk.ID, err)
			}
			if first := nextRendered(children, 0); first != nil {
				if !continuous(blk.Kind, first.Kind) {
					b.WriteString("\n")
				}
				if err := r.renderBlocks(ctx, b, children, dir, indent+1); err != nil {
					return err
				}
				continue
			}
		}

		if next == nil || !continuous(blk.Kind, next.Kind) {
			b.WriteString("\n")
		}
	}
	return nil
}

// splice renders the children of a block that has no output of its own
// (a column, a column list or an unsupported block) as a sibling list at
// indent.
func (r *Renderer) splice(ctx context.Context, b *strings.Builder, blk *types.Block, dir string, indent int) error {
	if !blk.HasChildren {
		return nil
	}
	children, err := r.loader.LoadChildren(ctx, blk.ID)
	if err != nil {
		return fmt.Errorf("loading children of %s: %w", blk.ID, err)
	}
	return r.renderBlocks(ctx, b, children, dir, indent)
}

// renderBlock writes the block's own Markdown, without children or the
// trailing blank line.
func (r *Renderer) renderBlock(ctx context.Context, b *strings.Builder, blk *types.Block, dir string, indent int) error {
	switch blk.Kind {
	case types.KindParagraph:
		writeText(b, blk, indent, "")
	case types.KindBulletedListItem:
		writeText(b, blk, indent, "- ")
	case types.KindNumberedListItem:
		writeText(b, blk, indent, "1. ")
	case types.KindToggle:
		writeText(b, blk, indent, "- ")
	case types.KindToDo:
		writeToDo(b, blk, indent)
	case types.KindHeading1:
		writeText(b, blk, 0, "# ")
	case types.KindHeading2:
		writeText(b, blk, 0, "## ")
	case types.KindHeading3:
		writeText(b, blk, 0, "### ")
	case types.KindQuote:
		writeText(b, blk, 0, "> ")
	case types.KindCallout:
		writeCallout(b, blk)
	case types.KindDivider:
		b.WriteString("---\n")
	case types.KindCode:
		writeCode(b, blk)
	case types.KindBookmark, types.KindLinkPreview, types.KindEmbed:
		writeLink(b, blk)
	case types.KindImage, types.KindFile, types.KindAudio, types.KindVideo:
		return r.writeMedia(ctx, b, blk, dir)
	case types.KindTable:
		return r.writeTable(ctx, b, blk)
	case types.KindChildPage:
		r.writeChildPage(b, blk)
	case types.KindTableRow, types.KindColumn, types.KindColumnList, types.KindUnsupported:
		// Handled by renderBlocks.
	default:
		return fmt.Errorf("no rendering rule for block kind %v", blk.Kind)
	}
	return nil
}

func (r *Renderer) reportUnsupported(blk *types.Block) {
	kind := blk.RawType
	if kind == "" {
		kind = blk.Kind.String()
	}
	r.log.WithFields(logrus.Fields{"kind": kind, "block": blk.ID}).Warn("unsupported block skipped")
	if r.onUnsupported != nil {
		r.onUnsupported(kind)
	}
}

// isSilent reports kinds that produce no output and are invisible to the
// blank-line rule.
func isSilent(k types.Kind) bool {
	return k == types.KindUnsupported || k == types.KindTableRow
}

// isStructural reports layout-only kinds whose children are spliced in at
// indentation zero.
func isStructural(k types.Kind) bool {
	return k == types.KindColumnList || k == types.KindColumn
}

// descends reports whether children of a block of kind k are rendered by the
// generic walk. Tables render their own rows; child pages are only linked.
func descends(k types.Kind) bool {
	return k != types.KindTable && k != types.KindChildPage
}

func continuous(cur, next types.Kind) bool {
	return listLike.Contains(cur) && listLike.Contains(next)
}

// nextRendered returns the first non-silent block in blocks[from:], or nil.
func nextRendered(blocks []types.Block, from int) *types.Block {
	for j := from; j < len(blocks); j++ {
		if !isSilent(blocks[j].Kind) {
			return &blocks[j]
		}
	}
	return nil
}

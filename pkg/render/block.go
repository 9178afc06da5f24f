package render

import (
	"strconv"

	"github.com/termdeck/termdeck/pkg/doctree"
	"github.com/termdeck/termdeck/pkg/errors"
	"github.com/termdeck/termdeck/pkg/layout"
)

// tablePlaceholder stands in for table content; table layout is not
// attempted in this engine.
const tablePlaceholder = "[table omitted]"

// renderBlocks renders a block sequence joined by sep. Blocks that render
// to nothing (note containers, foreign raw blocks) contribute no
// separator either.
func (r *Renderer) renderBlocks(blocks []doctree.Block, sep layout.Doc) (layout.Doc, error) {
	docs := make([]layout.Doc, 0, len(blocks))
	for _, b := range blocks {
		d, err := r.renderBlock(b)
		if err != nil {
			return layout.Empty(), err
		}
		docs = append(docs, d)
	}
	return layout.Concat(sep, docs...), nil
}

// renderBlock dispatches one block node. A variant without a rule is a
// fatal UNSUPPORTED_NODE error.
func (r *Renderer) renderBlock(b doctree.Block) (layout.Doc, error) {
	switch n := b.(type) {
	case doctree.Para:
		return r.renderInlines(n.Content)

	case doctree.Plain:
		return r.renderInlines(n.Content)

	case doctree.BlockQuote:
		body, err := r.renderBlocks(n.Blocks, layout.Blankline())
		if err != nil {
			return layout.Empty(), err
		}
		return layout.Prefixed(layout.Nest(body, 1), ">"), nil

	case doctree.Heading:
		return r.renderHeading(n)

	case doctree.Div:
		return r.renderDiv(n)

	case doctree.RawBlock:
		if n.Format == FormatID {
			return layout.Verbatim(n.Text), nil
		}
		// Raw markup addressed to other renderers is dropped.
		return layout.Empty(), nil

	case doctree.LineBlock:
		lines := make([]layout.Doc, 0, len(n.Lines))
		for _, ln := range n.Lines {
			d, err := r.renderInlines(ln)
			if err != nil {
				return layout.Empty(), err
			}
			lines = append(lines, d)
		}
		return layout.Lines(lines...), nil

	case doctree.Table:
		return layout.Text(tablePlaceholder), nil

	case doctree.DefinitionList:
		return r.renderDefinitions(n)

	case doctree.BulletList:
		return r.renderBulletList(n)

	case doctree.OrderedList:
		return r.renderOrderedList(n)

	case doctree.CodeBlock:
		if n.Language != "" {
			out, err := r.highlight(n.Text, n.Language)
			if err != nil {
				return layout.Empty(), err
			}
			return layout.Verbatim(out), nil
		}
		return layout.Nest(layout.Verbatim(n.Text), 4), nil

	case doctree.Rule:
		dinkus := "* * * * *"
		if r.opts.Unicode {
			dinkus = "⁂"
		}
		return layout.HCenter(layout.Text(dinkus), r.opts.Columns), nil
	}

	return layout.Empty(), errors.New(errors.ErrCodeUnsupportedNode, "no rule for block node %T", b)
}

// renderHeading maps a heading to its visual form. Levels above the slide
// level mark new slides and are centered against the full slide; the rest
// is a fixed per-level ladder of styles.
func (r *Renderer) renderHeading(n doctree.Heading) (layout.Doc, error) {
	if n.Level == 1 {
		r.section = doctree.Stringify(n.Content)
	}

	if n.Level < r.opts.SlideLevel {
		var body layout.Doc
		if hasClass(n.Classes, "big") {
			text, err := r.banner(doctree.Stringify(n.Content), r.opts.Columns)
			if err != nil {
				return layout.Empty(), err
			}
			body = layout.Verbatim(text)
		} else {
			var err error
			body, err = r.renderInlines(n.Content)
			if err != nil {
				return layout.Empty(), err
			}
		}
		styled, err := layout.Style(body, "bold")
		if err != nil {
			return layout.Empty(), err
		}
		return layout.VCenter(layout.HCenter(styled, r.opts.Columns), r.opts.Rows), nil
	}

	body, err := r.renderInlines(n.Content)
	if err != nil {
		return layout.Empty(), err
	}

	switch n.Level {
	case 1:
		styled, err := layout.Style(body, "bold", "underline")
		if err != nil {
			return layout.Empty(), err
		}
		return layout.HCenter(styled, r.opts.Columns), nil
	case 2:
		styled, err := layout.Style(body, "bold")
		if err != nil {
			return layout.Empty(), err
		}
		return layout.HCenter(styled, r.opts.Columns), nil
	case 3:
		return layout.Style(body, "bold", "underline")
	case 4:
		return layout.Style(body, "faint")
	default:
		return layout.Style(body, "bold")
	}
}

// renderDiv applies container policy by class tag.
func (r *Renderer) renderDiv(n doctree.Div) (layout.Doc, error) {
	// Speaker notes never reach the visible output. This is policy, not
	// an error.
	if hasClass(n.Classes, "note") || hasClass(n.Classes, "notes") {
		return layout.Empty(), nil
	}

	body, err := r.renderBlocks(n.Blocks, layout.Blankline())
	if err != nil {
		return layout.Empty(), err
	}

	if hasClass(n.Classes, "center") || hasClass(n.Classes, "centered") {
		width := r.opts.Columns
		if s, ok := n.Attrs["width"]; ok {
			if v, err := strconv.Atoi(s); err == nil && v > 0 {
				width = v
			}
		}
		return layout.HCenter(body, width), nil
	}

	if (hasClass(n.Classes, "section") || hasClass(n.Classes, "slide")) &&
		firstHeadingLevel(n.Blocks) == r.opts.SlideLevel && r.section != "" {
		header, err := layout.StyleText(r.section, r.accented("faint")...)
		if err != nil {
			return layout.Empty(), err
		}
		return layout.Concat(layout.Empty(), header, layout.Blankline(), body), nil
	}

	return layout.Concat(layout.Empty(), layout.CR(), body, layout.Blankline()), nil
}

func (r *Renderer) renderDefinitions(n doctree.DefinitionList) (layout.Doc, error) {
	items := make([]layout.Doc, 0, len(n.Items))
	for _, it := range n.Items {
		term, err := r.renderInlines(it.Term)
		if err != nil {
			return layout.Empty(), err
		}
		termBold, err := layout.Style(term, "bold")
		if err != nil {
			return layout.Empty(), err
		}

		parts := []layout.Doc{termBold}
		for _, def := range it.Definitions {
			dd, err := r.renderBlocks(def, layout.Blankline())
			if err != nil {
				return layout.Empty(), err
			}
			parts = append(parts, layout.Hang(dd, 2, ""))
		}
		items = append(items, layout.Paragraphs(parts...))
	}
	return layout.Paragraphs(items...), nil
}

func (r *Renderer) renderBulletList(n doctree.BulletList) (layout.Doc, error) {
	marker := "-"
	if r.opts.Unicode {
		marker = "•"
	}
	lead, err := r.markerString(marker)
	if err != nil {
		return layout.Empty(), err
	}

	sep := itemSeparator(n.Items)
	items := make([]layout.Doc, 0, len(n.Items))
	for _, it := range n.Items {
		body, err := r.renderBlocks(it, layout.Blankline())
		if err != nil {
			return layout.Empty(), err
		}
		items = append(items, layout.Hang(body, 2, lead+" "))
	}
	return layout.Nest(layout.Concat(sep, items...), 2), nil
}

func (r *Renderer) renderOrderedList(n doctree.OrderedList) (layout.Doc, error) {
	width := markerWidth(n.Style, n.Start, len(n.Items))
	sep := itemSeparator(n.Items)

	items := make([]layout.Doc, 0, len(n.Items))
	for i, it := range n.Items {
		label := delimitNumber(formatNumber(n.Start+i, n.Style), n.Delim)
		lead, err := r.markerString(label)
		if err != nil {
			return layout.Empty(), err
		}
		body, err := r.renderBlocks(it, layout.Blankline())
		if err != nil {
			return layout.Empty(), err
		}
		items = append(items, layout.Hang(body, width, lead))
	}
	return layout.Concat(sep, items...), nil
}

// markerString styles a list marker with the accent color, returning the
// finished string for use as a hang prefix.
func (r *Renderer) markerString(s string) (string, error) {
	if !r.opts.Color {
		return s, nil
	}
	d, err := layout.StyleText(s, accent)
	if err != nil {
		return "", err
	}
	return layout.Render(d, r.opts.Columns), nil
}

// itemSeparator implements tight/loose list policy: a list is tight when
// every item is a single plain paragraph, or a plain paragraph plus one
// nested list. Tight items join with single breaks, loose with blank
// lines.
func itemSeparator(items [][]doctree.Block) layout.Doc {
	if tightItems(items) {
		return layout.CR()
	}
	return layout.Blankline()
}

func tightItems(items [][]doctree.Block) bool {
	for _, it := range items {
		switch len(it) {
		case 0:
		case 1:
			if _, ok := it[0].(doctree.Plain); !ok {
				return false
			}
		case 2:
			if _, ok := it[0].(doctree.Plain); !ok {
				return false
			}
			switch it[1].(type) {
			case doctree.BulletList, doctree.OrderedList:
			default:
				return false
			}
		default:
			return false
		}
	}
	return true
}

func hasClass(classes []string, name string) bool {
	for _, c := range classes {
		if c == name {
			return true
		}
	}
	return false
}

// firstHeadingLevel returns the level of the first heading in blocks, or
// 0 when the sequence does not start with one.
func firstHeadingLevel(blocks []doctree.Block) int {
	if len(blocks) == 0 {
		return 0
	}
	if h, ok := blocks[0].(doctree.Heading); ok {
		return h.Level
	}
	return 0
}

package render

import (
	"strings"

	"github.com/termdeck/termdeck/pkg/doctree"
	"github.com/termdeck/termdeck/pkg/errors"
	"github.com/termdeck/termdeck/pkg/layout"
)

// accent is the color applied to emphasis, strong text, list markers, and
// numbers when color is enabled.
const accent = "cyan"

// renderInlines renders an inline sequence in order.
func (r *Renderer) renderInlines(inlines []doctree.Inline) (layout.Doc, error) {
	docs := make([]layout.Doc, 0, len(inlines))
	for _, in := range inlines {
		d, err := r.renderInline(in)
		if err != nil {
			return layout.Empty(), err
		}
		docs = append(docs, d)
	}
	return layout.Concat(layout.Empty(), docs...), nil
}

// renderInline dispatches one inline node. The default arm is the
// engine/input mismatch guard: a variant without a rule is a fatal error,
// never silently dropped.
func (r *Renderer) renderInline(in doctree.Inline) (layout.Doc, error) {
	switch n := in.(type) {
	case doctree.Str:
		return layout.Text(n.Text), nil

	case doctree.Space, doctree.SoftBreak:
		return layout.Space(), nil

	case doctree.LineBreak:
		return layout.CR(), nil

	case doctree.Code:
		return r.codeSpan(n.Text)

	case doctree.Math:
		delim := "$"
		if n.Display {
			delim = "$$"
		}
		return r.codeSpan(delim + n.Text + delim)

	case doctree.Emph:
		body, err := r.renderInlines(n.Content)
		if err != nil {
			return layout.Empty(), err
		}
		name := "underline"
		if r.opts.Italic {
			name = "italic"
		}
		return layout.Style(body, r.accented(name)...)

	case doctree.Strong:
		body, err := r.renderInlines(n.Content)
		if err != nil {
			return layout.Empty(), err
		}
		return layout.Style(body, r.accented("bold")...)

	case doctree.Strikeout:
		body, err := r.renderInlines(n.Content)
		if err != nil {
			return layout.Empty(), err
		}
		return layout.Style(body, "strikeout")

	case doctree.Underline:
		body, err := r.renderInlines(n.Content)
		if err != nil {
			return layout.Empty(), err
		}
		return layout.Style(body, "underline")

	case doctree.Superscript:
		text := doctree.Stringify(n.Content)
		if r.opts.Unicode {
			if sup, ok := superscriptString(text); ok {
				return layout.Text(sup), nil
			}
		}
		return r.bracketed(n.Content, "^")

	case doctree.Subscript:
		// No Unicode table for subscripts; always bracketed.
		return r.bracketed(n.Content, "~")

	case doctree.SmallCaps:
		return r.renderInlines(upperInlines(n.Content))

	case doctree.Cite:
		return r.renderInlines(n.Content)

	case doctree.Span:
		return r.renderInlines(n.Content)

	case doctree.Quoted:
		q := "'"
		if n.Double {
			q = `"`
		}
		return r.bracketed(n.Content, q)

	case doctree.Image:
		// Terminals have no raster output; the caption stands in.
		return r.renderInlines(n.Caption)

	case doctree.Link:
		return r.renderLink(n)

	case doctree.Note:
		return r.addNote(n.Blocks), nil

	case doctree.RawInline:
		if n.Format == FormatID {
			return layout.Text(n.Text), nil
		}
		// Raw markup for other renderers must not leak into slides.
		return layout.Empty(), nil
	}

	return layout.Empty(), errors.New(errors.ErrCodeUnsupportedNode, "no rule for inline node %T", in)
}

// renderLink collapses anchors and autolinks to their visible content;
// any other target becomes a synthesized footnote holding the URL, so the
// reader can find it in the slide's trailing notes.
func (r *Renderer) renderLink(n doctree.Link) (layout.Doc, error) {
	body, err := r.renderInlines(n.Content)
	if err != nil {
		return layout.Empty(), err
	}

	text := doctree.Stringify(n.Content)
	if strings.HasPrefix(n.Target, "#") || n.Target == text || n.Target == "mailto:"+text {
		return body, nil
	}

	marker := r.addNote([]doctree.Block{
		doctree.Plain{Content: []doctree.Inline{doctree.Str{Text: n.Target}}},
	})
	return layout.Concat(layout.Empty(), body, marker), nil
}

// codeSpan renders literal inline code, yellow when color is on.
func (r *Renderer) codeSpan(text string) (layout.Doc, error) {
	if !r.opts.Color {
		return layout.Text(text), nil
	}
	return layout.StyleText(text, "yellow")
}

// bracketed wraps rendered content tightly in the given delimiter.
func (r *Renderer) bracketed(content []doctree.Inline, delim string) (layout.Doc, error) {
	body, err := r.renderInlines(content)
	if err != nil {
		return layout.Empty(), err
	}
	return layout.Concat(layout.Empty(), layout.Text(delim), body, layout.Text(delim)), nil
}

// accented appends the accent color to a style list when color is on.
func (r *Renderer) accented(names ...string) []string {
	if r.opts.Color {
		return append(names, accent)
	}
	return names
}

// upperInlines recursively uppercases literal text runs, preserving the
// surrounding structure. Used for small caps.
func upperInlines(inlines []doctree.Inline) []doctree.Inline {
	out := make([]doctree.Inline, len(inlines))
	for i, in := range inlines {
		switch n := in.(type) {
		case doctree.Str:
			out[i] = doctree.Str{Text: strings.ToUpper(n.Text)}
		case doctree.Emph:
			out[i] = doctree.Emph{Content: upperInlines(n.Content)}
		case doctree.Strong:
			out[i] = doctree.Strong{Content: upperInlines(n.Content)}
		case doctree.Strikeout:
			out[i] = doctree.Strikeout{Content: upperInlines(n.Content)}
		case doctree.Underline:
			out[i] = doctree.Underline{Content: upperInlines(n.Content)}
		case doctree.Span:
			out[i] = doctree.Span{Classes: n.Classes, Content: upperInlines(n.Content)}
		case doctree.Quoted:
			out[i] = doctree.Quoted{Double: n.Double, Content: upperInlines(n.Content)}
		case doctree.Link:
			out[i] = doctree.Link{Target: n.Target, Content: upperInlines(n.Content)}
		default:
			out[i] = in
		}
	}
	return out
}

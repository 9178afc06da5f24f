// Package render turns a doctree document into terminal text, one slide's
// worth at a time.
//
// # Overview
//
// A [Renderer] owns the dispatch from every Block and Inline node variant
// to a layout.Doc fragment, plus the per-pass footnote collector. One
// renderer serves a whole deck: [Renderer.RenderPass] renders one block
// sequence (one slide), resetting the collector at the start and appending
// the collected footnotes at the end. Footnote numbering therefore
// restarts on every slide, which is the intended scoping.
//
// The renderer is synchronous and not safe for concurrent use: the
// footnote collector belongs to exactly one render pass at a time.
//
// External collaborators (banner renderer, syntax highlighter) enter as
// function values so the CLI can wire real tools and tests can wire
// fakes; a nil collaborator degrades to plain text.
package render

import (
	"strconv"

	"github.com/termdeck/termdeck/pkg/doctree"
	"github.com/termdeck/termdeck/pkg/layout"
)

// FormatID is the raw-passthrough format this engine claims. RawBlock and
// RawInline nodes tagged with any other format are dropped.
const FormatID = "terminal"

// BannerFunc renders text as big block letters no wider than width.
type BannerFunc func(text string, width int) (string, error)

// HighlightFunc returns code with ANSI syntax coloring.
type HighlightFunc func(code, language string) (string, error)

// Renderer renders block sequences into slide text.
type Renderer struct {
	opts      Options
	banner    BannerFunc
	highlight HighlightFunc

	// notes is the footnote collector: bodies in encounter order,
	// owned by the current render pass.
	notes [][]doctree.Block

	// section is the most recent top-level section title, shown in the
	// header row of slide-section containers.
	section string
}

// New creates a renderer. banner and highlight may be nil, in which case
// banner headings render as plain text and code blocks stay uncolored.
func New(opts Options, banner BannerFunc, highlight HighlightFunc) *Renderer {
	if banner == nil {
		banner = func(text string, width int) (string, error) { return text, nil }
	}
	if highlight == nil {
		highlight = func(code, language string) (string, error) { return code, nil }
	}
	return &Renderer{opts: opts, banner: banner, highlight: highlight}
}

// Options returns the renderer's configuration.
func (r *Renderer) Options() Options { return r.opts }

// RenderPass renders one block sequence as a standalone slide text. The
// footnote collector is reset first, so numbering restarts with every
// pass; collected footnotes are appended after the main content.
func (r *Renderer) RenderPass(blocks []doctree.Block) (string, error) {
	r.notes = nil

	body, err := r.renderBlocks(blocks, layout.Blankline())
	if err != nil {
		return "", err
	}

	notes, err := r.notesDoc()
	if err != nil {
		return "", err
	}

	return layout.Render(layout.Paragraphs(body, notes), r.opts.Columns), nil
}

// addNote appends a footnote body to the collector and returns the
// marker Doc for the new 1-based index. Indices are assigned after
// insertion, so they are strictly increasing within a pass and match the
// order the footnotes render in.
func (r *Renderer) addNote(body []doctree.Block) layout.Doc {
	r.notes = append(r.notes, body)
	return layout.Text(r.noteMarker(len(r.notes)))
}

// noteMarker formats a footnote reference: Unicode superscript digits
// when enabled, a bracketed [^N] marker otherwise.
func (r *Renderer) noteMarker(n int) string {
	s := strconv.Itoa(n)
	if r.opts.Unicode {
		if sup, ok := superscriptString(s); ok {
			return sup
		}
	}
	return "[^" + s + "]"
}

// notesDoc renders the collected footnote bodies as the trailing block of
// the pass. A body may itself register further footnotes; the index loop
// picks those up in order.
func (r *Renderer) notesDoc() (layout.Doc, error) {
	if len(r.notes) == 0 {
		return layout.Empty(), nil
	}
	var docs []layout.Doc
	for i := 0; i < len(r.notes); i++ {
		body, err := r.renderBlocks(r.notes[i], layout.Blankline())
		if err != nil {
			return layout.Empty(), err
		}
		marker := r.noteMarker(i+1) + " "
		// Wrapped note lines sit under the first content column, so a
		// bracketed marker wider than the base indent widens the hang.
		hang := 4
		if w := layout.VisibleWidth(marker); w > hang {
			hang = w
		}
		docs = append(docs, layout.Hang(body, hang, marker))
	}
	return layout.Lines(docs...), nil
}

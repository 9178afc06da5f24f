package render

import "github.com/termdeck/termdeck/pkg/errors"

// Options controls how a document is rendered into slide text. Options are
// passed explicitly through every render call; there is no ambient state.
type Options struct {
	// Unicode enables glyph substitutions: bullet markers, the dinkus,
	// superscript characters, and footnote markers.
	Unicode bool

	// Italic renders emphasis in italics; terminals without italic
	// support get underline instead.
	Italic bool

	// Color enables color accents on emphasis, strong text, bullets,
	// list numbers, and the section header row.
	Color bool

	// Columns is the slide width in terminal columns.
	Columns int

	// Rows is the slide height in terminal rows, used for vertical
	// centering of slide-boundary headings and the title unit.
	Rows int

	// SlideLevel is the heading depth at which a new slide begins.
	// Headings above it (numerically smaller levels) mark new slides;
	// headings at or below it render as in-slide emphasis.
	SlideLevel int

	// Theme names the highlighter color style.
	Theme string

	// Font names the FIGlet font for banner headings and the title.
	Font string
}

// DefaultOptions returns the standard render configuration for an
// 80x24 terminal.
func DefaultOptions() Options {
	return Options{
		Unicode:    true,
		Italic:     true,
		Color:      true,
		Columns:    80,
		Rows:       24,
		SlideLevel: 2,
		Theme:      "monokai",
		Font:       "standard",
	}
}

// Validate checks the options for values the renderer cannot work with.
func (o Options) Validate() error {
	if o.Columns <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "columns must be positive, got %d", o.Columns)
	}
	if o.Rows <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "rows must be positive, got %d", o.Rows)
	}
	if o.SlideLevel < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "slide level must be at least 1, got %d", o.SlideLevel)
	}
	return nil
}

// Package doctree defines the typed document tree consumed by the slide
// renderer.
//
// # Overview
//
// A [Document] is an ordered sequence of [Block] nodes carrying [Inline]
// content, plus document-level [Meta]. The node set mirrors the structural
// and inline elements of prose documents: headings, paragraphs, lists,
// quotes, code, footnotes, emphasis spans, links, and so on.
//
// Block and Inline are closed sums: each variant is a struct with a marker
// method, and every consumer dispatches with a type switch whose default
// arm reports an unsupported node. Order of children is always significant.
//
// The tree is read-only input for the renderer. Footnote bodies are block
// sequences captured by value where they occur.
package doctree

import "strings"

// Document is a parsed source document.
type Document struct {
	Meta   Meta
	Blocks []Block
}

// Meta holds document-level metadata used for the title slide and
// terminal-geometry overrides. Zero values mean "not set".
type Meta struct {
	Title  string
	Author string
	Rows   int
	Cols   int
}

// Block is a structural document node.
type Block interface{ block() }

// Inline is a node inside flowing text.
type Inline interface{ inline() }

// NumberStyle selects how ordered-list labels are formatted.
type NumberStyle int

const (
	Decimal NumberStyle = iota
	LowerAlpha
	UpperAlpha
	LowerRoman
	UpperRoman
)

// NumberDelim selects how ordered-list labels are delimited.
type NumberDelim int

const (
	Period    NumberDelim = iota // 1.
	OneParen                     // 1)
	TwoParens                    // (1)
)

// Block variants.
type (
	// Para is a paragraph of inline content.
	Para struct{ Content []Inline }

	// Plain is inline content without paragraph semantics, as inside
	// tight list items.
	Plain struct{ Content []Inline }

	// BlockQuote is a quoted group of blocks.
	BlockQuote struct{ Blocks []Block }

	// Heading is a section heading. Level is positive; Classes carries
	// source markers such as "big".
	Heading struct {
		Level   int
		Classes []string
		Content []Inline
	}

	// Div is a generic tagged container. Classes drive rendering policy
	// (note, center, section); Attrs carries any further key/values.
	Div struct {
		Classes []string
		Attrs   map[string]string
		Blocks  []Block
	}

	// RawBlock is verbatim text addressed to a specific output format.
	RawBlock struct{ Format, Text string }

	// LineBlock is a group of lines kept as lines, without paragraph
	// spacing.
	LineBlock struct{ Lines [][]Inline }

	// Table marks a table whose layout is not attempted. Contents are
	// intentionally not modeled.
	Table struct{}

	// DefinitionList is a sequence of term/definitions entries.
	DefinitionList struct{ Items []Definition }

	// BulletList is an unordered list.
	BulletList struct{ Items [][]Block }

	// OrderedList is a numbered list.
	OrderedList struct {
		Start int
		Style NumberStyle
		Delim NumberDelim
		Items [][]Block
	}

	// CodeBlock is literal code, optionally tagged with a language.
	CodeBlock struct{ Text, Language string }

	// Rule is a thematic break.
	Rule struct{}
)

// Definition is one entry of a DefinitionList.
type Definition struct {
	Term        []Inline
	Definitions [][]Block
}

func (Para) block()           {}
func (Plain) block()          {}
func (BlockQuote) block()     {}
func (Heading) block()        {}
func (Div) block()            {}
func (RawBlock) block()       {}
func (LineBlock) block()      {}
func (Table) block()          {}
func (DefinitionList) block() {}
func (BulletList) block()     {}
func (OrderedList) block()    {}
func (CodeBlock) block()      {}
func (Rule) block()           {}

// Inline variants.
type (
	// Str is a literal word or text run.
	Str struct{ Text string }

	// Space is an inter-word space, a permitted wrap point.
	Space struct{}

	// SoftBreak is a source line break inside a paragraph.
	SoftBreak struct{}

	// LineBreak is a forced line break.
	LineBreak struct{}

	// RawInline is verbatim inline text addressed to a specific format.
	RawInline struct{ Format, Text string }

	// Code is an inline code span.
	Code struct{ Text string }

	Emph        struct{ Content []Inline }
	Strong      struct{ Content []Inline }
	Strikeout   struct{ Content []Inline }
	Subscript   struct{ Content []Inline }
	Superscript struct{ Content []Inline }
	SmallCaps   struct{ Content []Inline }
	Underline   struct{ Content []Inline }

	// Cite is a citation; only the visible content is rendered.
	Cite struct{ Content []Inline }

	// Math is TeX source; Display selects display vs inline math.
	Math struct {
		Display bool
		Text    string
	}

	// Span is a generic tagged inline group.
	Span struct {
		Classes []string
		Content []Inline
	}

	// Link points at a URL or same-document anchor.
	Link struct {
		Target  string
		Content []Inline
	}

	// Image is referenced by its caption only; terminals have no raster.
	Image struct {
		Target  string
		Caption []Inline
	}

	// Quoted is content wrapped in quotation marks.
	Quoted struct {
		Double  bool
		Content []Inline
	}

	// Note is a footnote: its body is captured by value at the point of
	// encounter.
	Note struct{ Blocks []Block }
)

func (Str) inline()         {}
func (Space) inline()       {}
func (SoftBreak) inline()   {}
func (LineBreak) inline()   {}
func (RawInline) inline()   {}
func (Code) inline()        {}
func (Emph) inline()        {}
func (Strong) inline()      {}
func (Strikeout) inline()   {}
func (Subscript) inline()   {}
func (Superscript) inline() {}
func (SmallCaps) inline()   {}
func (Underline) inline()   {}
func (Cite) inline()        {}
func (Math) inline()        {}
func (Span) inline()        {}
func (Link) inline()        {}
func (Image) inline()       {}
func (Quoted) inline()      {}
func (Note) inline()        {}

// Stringify flattens inline content to plain text, dropping all styling.
// Used for autolink detection, slugs, and superscript substitution.
func Stringify(inlines []Inline) string {
	var b strings.Builder
	stringifyTo(&b, inlines)
	return b.String()
}

func stringifyTo(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch n := in.(type) {
		case Str:
			b.WriteString(n.Text)
		case Space, SoftBreak:
			b.WriteByte(' ')
		case LineBreak:
			b.WriteByte('\n')
		case Code:
			b.WriteString(n.Text)
		case Math:
			b.WriteString(n.Text)
		case RawInline:
			b.WriteString(n.Text)
		case Emph:
			stringifyTo(b, n.Content)
		case Strong:
			stringifyTo(b, n.Content)
		case Strikeout:
			stringifyTo(b, n.Content)
		case Subscript:
			stringifyTo(b, n.Content)
		case Superscript:
			stringifyTo(b, n.Content)
		case SmallCaps:
			stringifyTo(b, n.Content)
		case Underline:
			stringifyTo(b, n.Content)
		case Cite:
			stringifyTo(b, n.Content)
		case Span:
			stringifyTo(b, n.Content)
		case Link:
			stringifyTo(b, n.Content)
		case Image:
			stringifyTo(b, n.Caption)
		case Quoted:
			stringifyTo(b, n.Content)
		case Note:
			// Footnote bodies do not contribute to surrounding text.
		}
	}
}

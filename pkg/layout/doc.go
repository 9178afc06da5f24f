// Package layout implements the composable text-block algebra used by the
// slide renderer.
//
// # Overview
//
// The package builds immutable [Doc] values out of small primitives (text,
// spaces, line breaks) and structural combinators (concatenation,
// indentation, hanging indents, line prefixes, centering). A Doc is laid
// out into its final string with [Render], which word-wraps flowing text to
// a target column width.
//
// All width arithmetic is done on *visible* columns: ANSI escape sequences
// contribute zero width (see [VisibleWidth]). This is the load-bearing
// invariant of the engine — naive len() is wrong whenever styling is
// active, and every centering or wrapping decision in the renderer funnels
// through the measurement in this package.
//
// # Breaks
//
// Two break strengths exist. [CR] forces a new line. [Blankline] forces a
// paragraph break (one empty line). Adjacent breaks collapse to the
// stronger one, so a sequence of blanklines never produces more than one
// empty line. Leading and trailing breaks are trimmed from the rendered
// result.
//
// # Example
//
//	item := layout.Hang(layout.Words("hello world"), 2, "- ")
//	out := layout.Render(item, 40)
package layout

import "strings"

// op enumerates the Doc variants.
type op uint8

const (
	opEmpty    op = iota
	opText        // literal chunk, never wrapped internally
	opSpace       // breakable horizontal space
	opBreak       // line or paragraph break (strength in n)
	opConcat      // ordered children, optional separator interleaved
	opNest        // indent every line by n columns
	opHang        // first line led by prefix, rest indented by n
	opPrefixed    // every line preceded by prefix
	opHCenter     // horizontally center block within n columns
	opVCenter     // vertically center block within n rows
)

// Break strengths.
const (
	breakLine = 1 // single line break
	breakPara = 2 // paragraph break: exactly one empty line
)

// Doc is an immutable laid-out text value. The zero value is the empty Doc.
//
// Docs compose structurally; no text is produced until [Render] is called
// with a target width. Text atoms carry their visible width, computed once
// at construction, so measurement never re-scans escape sequences.
type Doc struct {
	op     op
	text   string // opText
	width  int    // opText: cached visible width
	n      int    // break strength, indent, or target width/height
	prefix string // opHang lead, opPrefixed marker
	kids   []Doc  // opConcat children; wrappers store a single child
}

// Empty returns the empty Doc. Rendering it yields "".
func Empty() Doc { return Doc{} }

// Text returns a Doc holding a literal, unwrappable chunk of text. The
// chunk may contain ANSI escape sequences; they are ignored for width.
// Text containing newlines is split into hard-broken lines, as [Verbatim].
func Text(s string) Doc {
	if s == "" {
		return Doc{}
	}
	if strings.ContainsRune(s, '\n') {
		return Verbatim(s)
	}
	return Doc{op: opText, text: s, width: VisibleWidth(s)}
}

// Verbatim returns a Doc whose lines are reproduced exactly, joined by
// hard breaks. Lines are never word-wrapped, only overflowed. Used for
// code blocks and pre-rendered external tool output.
func Verbatim(s string) Doc {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	kids := make([]Doc, 0, 2*len(lines)-1)
	for i, line := range lines {
		if i > 0 {
			kids = append(kids, CR())
		}
		kids = append(kids, Doc{op: opText, text: line, width: VisibleWidth(line)})
	}
	return Doc{op: opConcat, kids: kids}
}

// Space returns a breakable single space. Runs of spaces collapse to one,
// and a space is the only place flowing text may wrap.
func Space() Doc { return Doc{op: opSpace} }

// CR returns a mandatory line break.
func CR() Doc { return Doc{op: opBreak, n: breakLine} }

// Blankline returns a paragraph break. Adjacent paragraph breaks collapse
// to at most one blank line.
func Blankline() Doc { return Doc{op: opBreak, n: breakPara} }

// Words splits s on whitespace and joins the words with breakable spaces.
// This is the usual way plain prose enters the algebra.
func Words(s string) Doc {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Doc{}
	}
	kids := make([]Doc, 0, 2*len(fields)-1)
	for i, f := range fields {
		if i > 0 {
			kids = append(kids, Space())
		}
		kids = append(kids, Text(f))
	}
	return Doc{op: opConcat, kids: kids}
}

// Concat joins docs in order, interleaving sep between non-empty
// neighbors. Concat of no docs is the empty Doc.
func Concat(sep Doc, docs ...Doc) Doc {
	var kids []Doc
	for _, d := range docs {
		if d.IsEmpty() {
			continue
		}
		if len(kids) > 0 && !sep.IsEmpty() {
			kids = append(kids, sep)
		}
		kids = append(kids, d)
	}
	switch len(kids) {
	case 0:
		return Doc{}
	case 1:
		return kids[0]
	}
	return Doc{op: opConcat, kids: kids}
}

// Lines joins docs with single line breaks.
func Lines(docs ...Doc) Doc { return Concat(CR(), docs...) }

// Paragraphs joins docs with paragraph breaks.
func Paragraphs(docs ...Doc) Doc { return Concat(Blankline(), docs...) }

// Nest indents every line of d by n columns. The nested content wraps
// within the remaining width. Nest(d, 0) renders identically to d.
func Nest(d Doc, n int) Doc {
	if n < 0 {
		n = 0
	}
	return Doc{op: opNest, n: n, kids: []Doc{d}}
}

// Hang renders d with its first line led by prefix and every subsequent
// line indented by n columns. A prefix visibly narrower than n is padded
// so wrapped lines align under the first content column.
func Hang(d Doc, n int, prefix string) Doc {
	if n < 0 {
		n = 0
	}
	return Doc{op: opHang, n: n, prefix: prefix, kids: []Doc{d}}
}

// Prefixed puts marker at the start of every line of d.
func Prefixed(d Doc, marker string) Doc {
	return Doc{op: opPrefixed, prefix: marker, kids: []Doc{d}}
}

// HCenter centers d horizontally within width columns. The left pad is
// computed once against the widest visible line and applied uniformly, so
// multi-line blocks stay block-aligned rather than centered per line.
// Content already wider than width is left untouched.
func HCenter(d Doc, width int) Doc {
	return Doc{op: opHCenter, n: width, kids: []Doc{d}}
}

// VCenter centers d vertically within height rows by padding above with
// (height - lines) / 2 empty lines, remainder left below. Content already
// taller than height is left untouched.
func VCenter(d Doc, height int) Doc {
	return Doc{op: opVCenter, n: height, kids: []Doc{d}}
}

// IsEmpty reports whether d renders to nothing. Breaks and spaces count as
// content; wrappers are empty when their child is.
func (d Doc) IsEmpty() bool {
	switch d.op {
	case opEmpty:
		return true
	case opText:
		return d.text == ""
	case opConcat:
		for _, k := range d.kids {
			if !k.IsEmpty() {
				return false
			}
		}
		return true
	case opNest, opHang, opPrefixed, opHCenter, opVCenter:
		return d.kids[0].IsEmpty()
	}
	return false
}

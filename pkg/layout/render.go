package layout

import "strings"

// atomKind enumerates the flat stream elements produced from a Doc tree.
type atomKind uint8

const (
	atomText  atomKind = iota // unbreakable chunk
	atomSpace                 // wrap opportunity
	atomBreak                 // line/paragraph break
	atomBlock                 // pre-rendered lines, kept intact
)

type atom struct {
	kind  atomKind
	text  string   // atomText
	width int      // atomText visible width
	brk   int      // atomBreak strength
	lines []string // atomBlock
}

// Render lays out d at the given column width and returns the final text.
// Lines are joined with "\n"; the result carries no trailing newline.
func Render(d Doc, width int) string {
	return strings.Join(renderLines(d, width), "\n")
}

// Height returns the number of lines d occupies when rendered at width.
func Height(d Doc, width int) int {
	if d.IsEmpty() {
		return 0
	}
	return len(renderLines(d, width))
}

// renderLines flattens the Doc tree and flows it into lines. Structural
// wrappers (nest, hang, prefixed, centering) render their child at a
// reduced width first and enter the flow as opaque blocks.
func renderLines(d Doc, width int) []string {
	atoms := coalesceText(flatten(d, width, nil))

	var lines []string
	var cur strings.Builder
	curw := 0
	pending := 0 // strongest unflushed break
	pendingSpace := false
	started := false

	flushLine := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curw = 0
	}

	emitBreaks := func() {
		if pending == 0 {
			return
		}
		flushLine()
		if pending == breakPara {
			lines = append(lines, "")
		}
		pending = 0
	}

	for _, a := range atoms {
		switch a.kind {
		case atomText:
			if !started {
				started = true
				pending, pendingSpace = 0, false
			} else if pending > 0 {
				emitBreaks()
				pendingSpace = false
			} else if pendingSpace {
				if curw > 0 && curw+1+a.width > width {
					flushLine()
				} else {
					cur.WriteByte(' ')
					curw++
				}
				pendingSpace = false
			}
			cur.WriteString(a.text)
			curw += a.width

		case atomSpace:
			if started && pending == 0 {
				pendingSpace = true
			}

		case atomBreak:
			if started {
				pendingSpace = false
				if a.brk > pending {
					pending = a.brk
				}
			}

		case atomBlock:
			if len(a.lines) == 0 {
				continue
			}
			if !started {
				started = true
				pending, pendingSpace = 0, false
			} else {
				if pending == 0 {
					pending = breakLine
				}
				emitBreaks()
				pendingSpace = false
			}
			lines = append(lines, a.lines[:len(a.lines)-1]...)
			last := a.lines[len(a.lines)-1]
			cur.WriteString(last)
			curw = VisibleWidth(last)
		}
	}

	if started && cur.Len() > 0 {
		flushLine()
	}
	return lines
}

// coalesceText merges runs of adjacent text atoms into one. A styled word
// arrives as three atoms (escape, word, escape) and the wrap decision must
// see the run's full visible width, not the zero-width escape in front.
func coalesceText(atoms []atom) []atom {
	out := atoms[:0]
	for _, a := range atoms {
		if a.kind == atomText && len(out) > 0 && out[len(out)-1].kind == atomText {
			out[len(out)-1].text += a.text
			out[len(out)-1].width += a.width
			continue
		}
		out = append(out, a)
	}
	return out
}

// flatten appends d's atom stream to out. Wrappers sub-render their child.
func flatten(d Doc, width int, out []atom) []atom {
	switch d.op {
	case opEmpty:
		return out

	case opText:
		if d.text == "" {
			return out
		}
		return append(out, atom{kind: atomText, text: d.text, width: d.width})

	case opSpace:
		return append(out, atom{kind: atomSpace})

	case opBreak:
		return append(out, atom{kind: atomBreak, brk: d.n})

	case opConcat:
		for _, k := range d.kids {
			out = flatten(k, width, out)
		}
		return out

	case opNest:
		sub := renderLines(d.kids[0], width-d.n)
		pad := strings.Repeat(" ", d.n)
		for i, l := range sub {
			if l != "" {
				sub[i] = pad + l
			}
		}
		return append(out, atom{kind: atomBlock, lines: sub})

	case opHang:
		sub := renderLines(d.kids[0], width-d.n)
		lead := d.prefix
		if w := VisibleWidth(lead); w < d.n {
			lead += strings.Repeat(" ", d.n-w)
		}
		if len(sub) == 0 {
			return out
		}
		pad := strings.Repeat(" ", d.n)
		block := make([]string, len(sub))
		block[0] = lead + sub[0]
		for i := 1; i < len(sub); i++ {
			if sub[i] == "" {
				block[i] = ""
			} else {
				block[i] = pad + sub[i]
			}
		}
		return append(out, atom{kind: atomBlock, lines: block})

	case opPrefixed:
		sub := renderLines(d.kids[0], width-VisibleWidth(d.prefix))
		for i, l := range sub {
			sub[i] = d.prefix + l
		}
		return append(out, atom{kind: atomBlock, lines: sub})

	case opHCenter:
		w := d.n
		if w <= 0 {
			w = width
		}
		sub := trimCommonMargin(renderLines(d.kids[0], w))
		pad := (w - maxVisible(sub)) / 2
		if pad < 0 {
			pad = 0
		}
		lead := strings.Repeat(" ", pad)
		for i, l := range sub {
			if l != "" {
				sub[i] = lead + l
			}
		}
		return append(out, atom{kind: atomBlock, lines: sub})

	case opVCenter:
		sub := renderLines(d.kids[0], width)
		pad := (d.n - len(sub)) / 2
		if pad < 0 {
			pad = 0
		}
		block := make([]string, 0, pad+len(sub))
		for i := 0; i < pad; i++ {
			block = append(block, "")
		}
		block = append(block, sub...)
		return append(out, atom{kind: atomBlock, lines: block})
	}
	return out
}

// trimCommonMargin removes the largest all-space left margin shared by
// every non-empty line. Centering is computed on content, which keeps
// HCenter idempotent: re-centering already-centered output at the same
// width does not shift it.
func trimCommonMargin(lines []string) []string {
	margin := -1
	for _, l := range lines {
		if l == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " "))
		if margin < 0 || n < margin {
			margin = n
		}
	}
	if margin <= 0 {
		return lines
	}
	for i, l := range lines {
		if l != "" {
			lines[i] = l[margin:]
		}
	}
	return lines
}

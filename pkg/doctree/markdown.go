package doctree

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	gtext "github.com/yuin/goldmark/text"

	"github.com/termdeck/termdeck/pkg/errors"
)

// LoadMarkdown parses Markdown source into a Document using goldmark.
//
// Strikethrough, footnotes, definition lists, and tables come from the GFM
// extensions; YAML front matter feeds Meta (title, author, rows, cols).
// Inline text is tokenized into Str/Space runs so the renderer can wrap at
// word boundaries. Markdown has no syntax for the full node set (math,
// small caps, spans, ...); those variants only reach the renderer through
// programmatic construction.
func LoadMarkdown(src []byte) (*Document, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Footnote,
			extension.DefinitionList,
			extension.Table,
			meta.Meta,
		),
		goldmark.WithParserOptions(parser.WithHeadingAttribute()),
	)

	ctx := parser.NewContext()
	root := md.Parser().Parse(gtext.NewReader(src), parser.WithContext(ctx))

	m, err := meta.TryGet(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse front matter")
	}

	c := &converter{src: src, notes: map[int][]Block{}}
	c.collectFootnotes(root)

	doc := &Document{
		Meta:   metaFrom(m),
		Blocks: c.blocks(root),
	}
	return doc, nil
}

// metaFrom picks the recognized keys out of parsed front matter.
func metaFrom(m map[string]interface{}) Meta {
	var out Meta
	if m == nil {
		return out
	}
	if v, ok := m["title"].(string); ok {
		out.Title = v
	}
	if v, ok := m["author"].(string); ok {
		out.Author = v
	}
	if v, ok := m["rows"].(int); ok {
		out.Rows = v
	}
	if v, ok := m["cols"].(int); ok {
		out.Cols = v
	}
	return out
}

type converter struct {
	src   []byte
	notes map[int][]Block // footnote index → body blocks
}

// collectFootnotes resolves footnote definitions up front so links can
// capture their bodies by value during conversion.
func (c *converter) collectFootnotes(root ast.Node) {
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		list, ok := n.(*east.FootnoteList)
		if !ok {
			continue
		}
		for fn := list.FirstChild(); fn != nil; fn = fn.NextSibling() {
			if f, ok := fn.(*east.Footnote); ok {
				c.notes[f.Index] = c.blocks(f)
			}
		}
	}
}

func (c *converter) blocks(parent ast.Node) []Block {
	var out []Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b, ok := c.block(n); ok {
			out = append(out, b)
		}
	}
	return out
}

func (c *converter) block(n ast.Node) (Block, bool) {
	switch t := n.(type) {
	case *ast.Heading:
		return Heading{Level: t.Level, Classes: headingClasses(t), Content: c.inlines(t)}, true
	case *ast.Paragraph:
		return Para{Content: c.inlines(t)}, true
	case *ast.TextBlock:
		return Plain{Content: c.inlines(t)}, true
	case *ast.Blockquote:
		return BlockQuote{Blocks: c.blocks(t)}, true
	case *ast.List:
		return c.list(t), true
	case *ast.FencedCodeBlock:
		return CodeBlock{Text: c.blockText(t), Language: string(t.Language(c.src))}, true
	case *ast.CodeBlock:
		return CodeBlock{Text: c.blockText(t)}, true
	case *ast.ThematicBreak:
		return Rule{}, true
	case *ast.HTMLBlock:
		return RawBlock{Format: "html", Text: c.htmlBlockText(t)}, true
	case *east.Table:
		return Table{}, true
	case *east.DefinitionList:
		return c.definitionList(t), true
	case *east.FootnoteList:
		// Bodies were captured into the links; the trailing list is gone.
		return nil, false
	}
	return nil, false
}

func (c *converter) list(t *ast.List) Block {
	var items [][]Block
	for li := t.FirstChild(); li != nil; li = li.NextSibling() {
		items = append(items, c.blocks(li))
	}
	if !t.IsOrdered() {
		return BulletList{Items: items}
	}
	delim := Period
	if t.Marker == ')' {
		delim = OneParen
	}
	return OrderedList{Start: t.Start, Style: Decimal, Delim: delim, Items: items}
}

func (c *converter) definitionList(t *east.DefinitionList) Block {
	var items []Definition
	for n := t.FirstChild(); n != nil; n = n.NextSibling() {
		switch d := n.(type) {
		case *east.DefinitionTerm:
			items = append(items, Definition{Term: c.inlines(d)})
		case *east.DefinitionDescription:
			if len(items) == 0 {
				continue
			}
			last := &items[len(items)-1]
			last.Definitions = append(last.Definitions, c.blocks(d))
		}
	}
	return DefinitionList{Items: items}
}

func (c *converter) inlines(parent ast.Node) []Inline {
	var out []Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = c.inline(n, out)
	}
	return out
}

func (c *converter) inline(n ast.Node, out []Inline) []Inline {
	switch t := n.(type) {
	case *ast.Text:
		out = appendText(out, string(t.Segment.Value(c.src)))
		if t.HardLineBreak() {
			out = append(out, LineBreak{})
		} else if t.SoftLineBreak() {
			out = append(out, SoftBreak{})
		}
		return out
	case *ast.String:
		return appendText(out, string(t.Value))
	case *ast.CodeSpan:
		return append(out, Code{Text: c.nodeText(t)})
	case *ast.Emphasis:
		if t.Level >= 2 {
			return append(out, Strong{Content: c.inlines(t)})
		}
		return append(out, Emph{Content: c.inlines(t)})
	case *east.Strikethrough:
		return append(out, Strikeout{Content: c.inlines(t)})
	case *ast.Link:
		return append(out, Link{Target: string(t.Destination), Content: c.inlines(t)})
	case *ast.AutoLink:
		url := string(t.URL(c.src))
		label := string(t.Label(c.src))
		return append(out, Link{Target: url, Content: []Inline{Str{Text: label}}})
	case *ast.Image:
		return append(out, Image{Target: string(t.Destination), Caption: c.inlines(t)})
	case *ast.RawHTML:
		return append(out, RawInline{Format: "html", Text: c.segmentsText(t.Segments)})
	case *east.FootnoteLink:
		return append(out, Note{Blocks: c.notes[t.Index]})
	}
	return out
}

// appendText tokenizes literal text into Str words separated by explicit
// Space nodes, preserving boundary spaces around neighboring inlines.
func appendText(out []Inline, s string) []Inline {
	i := 0
	for i < len(s) {
		if s[i] == ' ' || s[i] == '\t' {
			out = append(out, Space{})
			for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
				i++
			}
			continue
		}
		j := i
		for j < len(s) && s[j] != ' ' && s[j] != '\t' {
			j++
		}
		out = append(out, Str{Text: s[i:j]})
		i = j
	}
	return out
}

// blockText concatenates the raw source lines of a block node.
func (c *converter) blockText(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(c.src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (c *converter) htmlBlockText(t *ast.HTMLBlock) string {
	text := c.blockText(t)
	if t.HasClosure() {
		text += "\n" + strings.TrimRight(string(t.ClosureLine.Value(c.src)), "\n")
	}
	return text
}

func (c *converter) segmentsText(segs *gtext.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buf.Write(seg.Value(c.src))
	}
	return buf.String()
}

// nodeText collects the literal text under an inline node.
func (c *converter) nodeText(n ast.Node) string {
	var buf bytes.Buffer
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		switch t := ch.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(c.src))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(c.nodeText(ch))
		}
	}
	return buf.String()
}

// headingClasses extracts heading classes parsed from attribute syntax
// ("# Title {.big}").
func headingClasses(n ast.Node) []string {
	v, ok := n.AttributeString("class")
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []byte:
		return strings.Fields(string(t))
	case string:
		return strings.Fields(t)
	}
	return nil
}

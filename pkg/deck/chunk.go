package deck

import (
	"strings"
	"unicode"

	"github.com/termdeck/termdeck/pkg/doctree"
)

// A Chunk is one slide's worth of blocks plus the heading text its file
// name derives from.
type Chunk struct {
	Title  string
	Blocks []doctree.Block
}

// Split partitions a block sequence into chunks: every heading at exactly
// slideLevel starts a new chunk, and content before the first such heading
// forms an implicit leading chunk with no title of its own.
func Split(blocks []doctree.Block, slideLevel int) []Chunk {
	var chunks []Chunk
	var cur Chunk
	for _, b := range blocks {
		if h, ok := b.(doctree.Heading); ok && h.Level == slideLevel {
			if len(cur.Blocks) > 0 {
				chunks = append(chunks, cur)
			}
			cur = Chunk{Title: doctree.Stringify(h.Content), Blocks: []doctree.Block{b}}
			continue
		}
		cur.Blocks = append(cur.Blocks, b)
	}
	if len(cur.Blocks) > 0 {
		chunks = append(chunks, cur)
	}
	return chunks
}

// slugify turns heading text into a file-name fragment: lowercased, runs
// of non-alphanumerics collapsed to a single dash, trimmed. Text with no
// usable characters falls back to "slide".
func slugify(s string) string {
	var b strings.Builder
	dash := true // suppress a leading dash
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "slide"
	}
	return out
}

// firstHeadingText returns the text of the first heading at any level,
// used as the title fallback for documents without metadata.
func firstHeadingText(blocks []doctree.Block) string {
	for _, b := range blocks {
		if h, ok := b.(doctree.Heading); ok {
			return doctree.Stringify(h.Content)
		}
	}
	return ""
}

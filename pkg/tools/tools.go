// Package tools wraps the external formatting collaborators the renderer
// depends on: the FIGlet-style banner renderer, the syntax highlighter,
// and the terminal size query.
//
// Each collaborator is a pure, synchronous function. Failures are wrapped
// as EXTERNAL_TOOL errors and abort the current render pass; there are no
// retries. The renderer receives these as plain function values so tests
// can substitute fakes.
package tools

import (
	"bytes"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/common-nighthawk/go-figure"
	"golang.org/x/term"

	"github.com/termdeck/termdeck/pkg/errors"
	"github.com/termdeck/termdeck/pkg/layout"
)

// Fallback terminal geometry when the size query is unavailable (not a
// terminal, or the ioctl fails).
const (
	DefaultRows = 24
	DefaultCols = 80
)

// DefaultFont is the FIGlet font used when none is configured.
const DefaultFont = "standard"

// Banner renders text as big block letters. If the lettered output would
// not fit in width columns, the plain text is returned instead so titles
// stay legible on narrow terminals.
func Banner(text string, width int, font string) (out string, err error) {
	// go-figure reports bad input by panicking; surface that as the
	// external-tool failure it is.
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeExternalTool, "banner render failed: %v", r)
		}
	}()

	if font == "" {
		font = DefaultFont
	}
	fig := figure.NewFigure(text, font, false)
	lines := fig.Slicify()
	widest := 0
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
		if w := layout.VisibleWidth(lines[i]); w > widest {
			widest = w
		}
	}
	if widest > width || len(lines) == 0 {
		return text, nil
	}
	return strings.Join(lines, "\n"), nil
}

// Highlight runs code through the syntax highlighter and returns ANSI
// colored text. Unknown languages fall back to the plain-text lexer, and
// an unknown style name falls back to the default style; tokenizer or
// formatter failures are EXTERNAL_TOOL errors.
func Highlight(code, language, style string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	st := styles.Get(style)
	if st == nil {
		st = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeExternalTool, err, "tokenize %s code", language)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, st, it); err != nil {
		return "", errors.Wrap(errors.ErrCodeExternalTool, err, "format %s code", language)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// TerminalSize queries the controlling terminal's geometry. When stdout is
// not a terminal it returns the documented fallbacks (24 rows, 80 cols).
func TerminalSize() (rows, cols int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return DefaultRows, DefaultCols
	}
	return h, w
}

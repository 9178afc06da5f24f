package layout

import (
	"regexp"

	"github.com/mattn/go-runewidth"
)

// ansiSeq matches a CSI escape sequence: ESC, '[', parameter bytes
// (digits and semicolons), and a final letter. This covers every sequence
// the style encoder emits plus cursor-movement codes embedded by external
// tools.
var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes all escape sequences from s.
func StripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

// VisibleWidth returns the number of terminal columns s occupies, ignoring
// escape sequences. Wide runes (CJK, emoji) count per their display width.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// maxVisible returns the visible width of the widest line.
func maxVisible(lines []string) int {
	max := 0
	for _, l := range lines {
		if w := VisibleWidth(l); w > max {
			max = w
		}
	}
	return max
}

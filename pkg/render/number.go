package render

import (
	"strconv"
	"strings"

	"github.com/termdeck/termdeck/pkg/doctree"
)

// superscripts maps the characters that have Unicode superscript glyphs.
// Letters are deliberately absent: a run with any unmapped character falls
// back to caret bracketing as a whole.
var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
}

// superscriptString substitutes every character of s with its superscript
// glyph. The second return is false if any character has no glyph; the
// caller must then fall back to bracketing the literal text.
func superscriptString(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		sup, ok := superscripts[r]
		if !ok {
			return "", false
		}
		b.WriteRune(sup)
	}
	return b.String(), true
}

var romanValues = []struct {
	value int
	glyph string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func toRoman(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.glyph)
			n -= rv.value
		}
	}
	return b.String()
}

// formatNumber renders one ordered-list number in the given style. Alpha
// labels are chr(96+n mod 26) / chr(64+n mod 26), so counts past 26 wrap
// around rather than doubling up letters.
func formatNumber(n int, style doctree.NumberStyle) string {
	switch style {
	case doctree.LowerAlpha:
		return string(rune(96 + n%26))
	case doctree.UpperAlpha:
		return string(rune(64 + n%26))
	case doctree.LowerRoman:
		return strings.ToLower(toRoman(n))
	case doctree.UpperRoman:
		return toRoman(n)
	}
	return strconv.Itoa(n)
}

// delimitNumber applies the list's delimiter style to a formatted number.
func delimitNumber(label string, delim doctree.NumberDelim) string {
	switch delim {
	case doctree.OneParen:
		return label + ")"
	case doctree.TwoParens:
		return "(" + label + ")"
	}
	return label + "."
}

// markerWidth computes the columns reserved for ordered-list markers:
// roman numerals get 5; otherwise 4 when the highest number passes 9,
// else 3.
func markerWidth(style doctree.NumberStyle, start, count int) int {
	if style == doctree.LowerRoman || style == doctree.UpperRoman {
		return 5
	}
	if start+count-1 > 9 {
		return 4
	}
	return 3
}

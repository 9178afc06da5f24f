package layout

import (
	"strings"

	"github.com/termdeck/termdeck/pkg/errors"
)

// sgrPair holds the SGR parameter that turns a style on and the one that
// restores the default.
type sgrPair struct {
	on, off string
}

// sgrTable maps style names to their SGR on/off parameters. Attribute
// resets are per-class: colors reset to 39/49, not to 0, so composed
// styles can be closed independently.
var sgrTable = map[string]sgrPair{
	"bold":      {"1", "22"},
	"faint":     {"2", "22"},
	"italic":    {"3", "23"},
	"underline": {"4", "24"},
	"blink":     {"5", "25"},
	"inverse":   {"7", "27"},
	"strikeout": {"9", "29"},

	"black":   {"30", "39"},
	"red":     {"31", "39"},
	"green":   {"32", "39"},
	"yellow":  {"33", "39"},
	"blue":    {"34", "39"},
	"magenta": {"35", "39"},
	"cyan":    {"36", "39"},
	"white":   {"37", "39"},

	"onblack":   {"40", "49"},
	"onred":     {"41", "49"},
	"ongreen":   {"42", "49"},
	"onyellow":  {"43", "49"},
	"onblue":    {"44", "49"},
	"onmagenta": {"45", "49"},
	"oncyan":    {"46", "49"},
	"onwhite":   {"47", "49"},
}

// Style wraps body in the named styles. All start codes are folded into a
// single escape sequence before the body and all stop codes into a single
// sequence after it, in request order.
//
// An unknown name is an UNKNOWN_STYLE error: silently dropping a style
// would be a visible-output correctness bug, so the miss is never ignored.
func Style(body Doc, names ...string) (Doc, error) {
	if len(names) == 0 {
		return body, nil
	}
	ons := make([]string, 0, len(names))
	offs := make([]string, 0, len(names))
	for _, name := range names {
		p, ok := sgrTable[name]
		if !ok {
			return Doc{}, errors.New(errors.ErrCodeUnknownStyle, "no style named %q", name)
		}
		ons = append(ons, p.on)
		offs = append(offs, p.off)
	}
	start := "\x1b[" + strings.Join(ons, ";") + "m"
	stop := "\x1b[" + strings.Join(offs, ";") + "m"
	return Concat(Empty(), Text(start), body, Text(stop)), nil
}

// StyleText is shorthand for styling a literal string.
func StyleText(s string, names ...string) (Doc, error) {
	return Style(Text(s), names...)
}

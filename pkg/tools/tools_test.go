package tools

import (
	"strings"
	"testing"

	"github.com/termdeck/termdeck/pkg/layout"
)

func TestBanner(t *testing.T) {
	out, err := Banner("Hi", 120, "")
	if err != nil {
		t.Fatalf("Banner: %v", err)
	}
	if !strings.Contains(out, "\n") {
		t.Errorf("banner output not multi-line: %q", out)
	}
	if layout.VisibleWidth(strings.Split(out, "\n")[0]) > 120 {
		t.Errorf("banner wider than requested width")
	}
}

func TestBannerNarrowFallback(t *testing.T) {
	// A width no lettered rendering can satisfy falls back to the
	// plain text.
	out, err := Banner("Presentation", 8, "")
	if err != nil {
		t.Fatalf("Banner: %v", err)
	}
	if out != "Presentation" {
		t.Errorf("Banner() = %q, want plain fallback", out)
	}
}

func TestHighlight(t *testing.T) {
	out, err := Highlight("print(1)", "python", "monokai")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("highlighted output carries no escape sequences: %q", out)
	}
	if layout.StripANSI(out) == "" {
		t.Errorf("highlighted output lost its text")
	}
}

func TestHighlightUnknownLanguage(t *testing.T) {
	out, err := Highlight("whatever ???", "no-such-lang", "monokai")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !strings.Contains(layout.StripANSI(out), "whatever") {
		t.Errorf("fallback lexer dropped text: %q", out)
	}
}

func TestTerminalSizeFallback(t *testing.T) {
	// Test binaries run without a controlling terminal on stdout, so the
	// documented fallbacks apply.
	rows, cols := TerminalSize()
	if rows <= 0 || cols <= 0 {
		t.Errorf("TerminalSize() = %d, %d", rows, cols)
	}
}

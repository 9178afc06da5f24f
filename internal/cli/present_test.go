package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/termdeck/termdeck/pkg/deck"
)

func testDeck() *deck.Deck {
	return &deck.Deck{
		ID: "test",
		Slides: []deck.Slide{
			{Seq: 0, Name: "000-title", Text: "TITLE"},
			{Seq: 1, Name: "001-one", Text: "slide one"},
			{Seq: 2, Name: "002-run", Text: "#!/bin/sh\necho hi", Executable: true},
		},
	}
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestPresentModelNavigation(t *testing.T) {
	d := testDeck()
	var m tea.Model = presentModel{dir: ".", slides: d.Slides}

	step := func(msg tea.Msg) {
		m, _ = m.Update(msg)
	}

	step(key("right"))
	if m.(presentModel).cursor != 1 {
		t.Errorf("cursor = %d after next, want 1", m.(presentModel).cursor)
	}

	step(key("left"))
	if m.(presentModel).cursor != 0 {
		t.Errorf("cursor = %d after prev, want 0", m.(presentModel).cursor)
	}

	// Prev at the first slide stays put.
	step(key("left"))
	if m.(presentModel).cursor != 0 {
		t.Errorf("cursor = %d, want 0 at first slide", m.(presentModel).cursor)
	}

	step(key("G"))
	if got := m.(presentModel).cursor; got != 2 {
		t.Errorf("cursor = %d after G, want 2", got)
	}

	// Next at the last slide stays put.
	step(key("right"))
	if got := m.(presentModel).cursor; got != 2 {
		t.Errorf("cursor = %d, want 2 at last slide", got)
	}

	step(key("g"))
	if got := m.(presentModel).cursor; got != 0 {
		t.Errorf("cursor = %d after g, want 0", got)
	}
}

func TestPresentModelView(t *testing.T) {
	d := testDeck()
	m := presentModel{dir: ".", slides: d.Slides, cursor: 2}

	view := m.View()
	if !strings.Contains(view, "echo hi") {
		t.Errorf("view missing slide text:\n%s", view)
	}
	if !strings.Contains(view, "3/3") {
		t.Errorf("view missing position indicator:\n%s", view)
	}
	if !strings.Contains(view, d.Slides[2].Name) {
		t.Errorf("view missing slide name:\n%s", view)
	}
	if !strings.Contains(view, "x run") {
		t.Errorf("view missing run hint for executable slide:\n%s", view)
	}

	m.cursor = 0
	if strings.Contains(m.View(), "x run") {
		t.Error("run hint shown for non-executable slide")
	}
}

package deck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/termdeck/termdeck/pkg/doctree"
	"github.com/termdeck/termdeck/pkg/errors"
	"github.com/termdeck/termdeck/pkg/render"
)

func testOpts() render.Options {
	o := render.DefaultOptions()
	o.Unicode = false
	o.Italic = false
	o.Color = false
	o.Columns = 40
	o.Rows = 10
	return o
}

func para(text string) doctree.Block {
	return doctree.Para{Content: []doctree.Inline{doctree.Str{Text: text}}}
}

func heading(level int, text string) doctree.Block {
	return doctree.Heading{Level: level, Content: []doctree.Inline{doctree.Str{Text: text}}}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		blocks     []doctree.Block
		slideLevel int
		wantTitles []string
	}{
		{
			name: "split at slide level",
			blocks: []doctree.Block{
				heading(2, "One"), para("a"),
				heading(2, "Two"), para("b"),
			},
			slideLevel: 2,
			wantTitles: []string{"One", "Two"},
		},
		{
			name: "implicit leading chunk",
			blocks: []doctree.Block{
				para("intro"),
				heading(2, "One"), para("a"),
			},
			slideLevel: 2,
			wantTitles: []string{"", "One"},
		},
		{
			name: "deeper headings stay in place",
			blocks: []doctree.Block{
				heading(2, "One"), heading(3, "Sub"), para("a"),
			},
			slideLevel: 2,
			wantTitles: []string{"One"},
		},
		{
			name:       "empty document",
			blocks:     nil,
			slideLevel: 2,
			wantTitles: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.blocks, tt.slideLevel)
			if len(chunks) != len(tt.wantTitles) {
				t.Fatalf("got %d chunks, want %d", len(chunks), len(tt.wantTitles))
			}
			for i, c := range chunks {
				if c.Title != tt.wantTitles[i] {
					t.Errorf("chunk %d title %q, want %q", i, c.Title, tt.wantTitles[i])
				}
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"What's new in 1.2?", "what-s-new-in-1-2"},
		{"  spaced  out  ", "spaced-out"},
		{"---", "slide"},
		{"", "slide"},
		{"Ünïcode Röcks", "ünïcode-röcks"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildNamesAndOrder(t *testing.T) {
	doc := &doctree.Document{
		Meta: doctree.Meta{Title: "My Deck", Author: "Alex"},
		Blocks: []doctree.Block{
			heading(1, "Intro"),
			heading(2, "First Steps"), para("a"),
			heading(2, "Next"), para("b"),
		},
	}

	d, err := Build(doc, "talk.md", testOpts(), nil, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantNames := []string{"000-my-deck", "001-slide", "002-first-steps", "003-next"}
	if len(d.Slides) != len(wantNames) {
		t.Fatalf("got %d slides, want %d", len(d.Slides), len(wantNames))
	}
	for i, s := range d.Slides {
		if s.Name != wantNames[i] {
			t.Errorf("slide %d name %q, want %q", i, s.Name, wantNames[i])
		}
		if s.Seq != i {
			t.Errorf("slide %d seq %d", i, s.Seq)
		}
	}

	if !strings.Contains(d.Slides[0].Text, "My Deck") {
		t.Errorf("title slide missing title:\n%s", d.Slides[0].Text)
	}
	if !strings.Contains(d.Slides[0].Text, "Alex") {
		t.Errorf("title slide missing author:\n%s", d.Slides[0].Text)
	}
	if d.ID == "" {
		t.Error("deck id not assigned")
	}
}

func TestBuildTitleFallsBackToFirstHeading(t *testing.T) {
	doc := &doctree.Document{
		Blocks: []doctree.Block{
			heading(1, "Opening Remarks"),
			heading(2, "Body"), para("a"),
		},
	}
	d, err := Build(doc, "talk.md", testOpts(), nil, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if d.Slides[0].Name != "000-opening-remarks" {
		t.Errorf("title slide name %q", d.Slides[0].Name)
	}
}

func TestBuildFootnotesResetPerSlide(t *testing.T) {
	note := doctree.Para{Content: []doctree.Inline{
		doctree.Str{Text: "x"},
		doctree.Note{Blocks: []doctree.Block{para("ref")}},
	}}
	doc := &doctree.Document{
		Meta: doctree.Meta{Title: "t"},
		Blocks: []doctree.Block{
			heading(2, "One"), note,
			heading(2, "Two"), note,
		},
	}

	d, err := Build(doc, "talk.md", testOpts(), nil, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, s := range d.Slides[1:] {
		if !strings.Contains(s.Text, "[^1]") {
			t.Errorf("slide %s: footnote numbering did not restart:\n%s", s.Name, s.Text)
		}
		if strings.Contains(s.Text, "[^2]") {
			t.Errorf("slide %s: stale footnote index:\n%s", s.Name, s.Text)
		}
	}
}

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	d := &Deck{
		ID:      "deck-1",
		Source:  "talk.md",
		Options: testOpts(),
		Slides: []Slide{
			{Seq: 0, Name: "000-title", Text: "TITLE"},
			{Seq: 1, Name: "001-demo", Text: "#!/bin/sh\necho hi", Executable: true},
		},
	}

	if err := d.Write(dir); err != nil {
		t.Fatalf("Write: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "001-demo"))
	if err != nil {
		t.Fatalf("stat slide: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("executable slide written without exec bit: %v", info.Mode())
	}
	info, err = os.Stat(filepath.Join(dir, "000-title"))
	if err != nil {
		t.Fatalf("stat slide: %v", err)
	}
	if info.Mode().Perm()&0o111 != 0 {
		t.Errorf("plain slide written with exec bit: %v", info.Mode())
	}

	got, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.ID != d.ID || got.Source != d.Source {
		t.Errorf("manifest round trip: got %q/%q", got.ID, got.Source)
	}
	if len(got.Slides) != 2 {
		t.Fatalf("got %d slides", len(got.Slides))
	}
	if got.Slides[0].Text != "TITLE" {
		t.Errorf("slide text %q", got.Slides[0].Text)
	}
	if !got.Slides[1].Executable {
		t.Error("executable flag lost on read")
	}
}

func TestReadMissingDeck(t *testing.T) {
	_, err := Read(t.TempDir())
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

// Package deck turns a loaded document into an ordered sequence of slide
// units and reads/writes decks on disk.
//
// A deck directory holds one file per slide, named {NNN}-{slug}, plus a
// deck.json manifest recording the deck id, source, option snapshot, and
// slide order. Slide files are plain text; a slide whose content starts
// with "#!" is written executable so a presenting shell can run it.
package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/termdeck/termdeck/pkg/doctree"
	"github.com/termdeck/termdeck/pkg/errors"
	"github.com/termdeck/termdeck/pkg/render"
)

// ManifestName is the file the deck manifest is written to.
const ManifestName = "deck.json"

// Slide is one rendered slide unit. Immutable after creation.
type Slide struct {
	Seq        int
	Name       string
	Text       string
	Executable bool
}

// Deck is an ordered rendered slide sequence plus its identity.
type Deck struct {
	ID        string
	Source    string
	Options   render.Options
	Slides    []Slide
	CreatedAt time.Time
}

type manifest struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Options   render.Options `json:"options"`
	Slides    []string       `json:"slides"`
	CreatedAt time.Time      `json:"created_at"`
}

// Build renders doc into a deck. The title unit comes first (sequence
// 000), then one unit per chunk in document order. One renderer serves
// the whole deck so the section header state carries across slides, while
// footnote numbering restarts with every unit.
func Build(doc *doctree.Document, source string, opts render.Options, banner render.BannerFunc, highlight render.HighlightFunc) (*Deck, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	r := render.New(opts, banner, highlight)

	title := doc.Meta.Title
	if title == "" {
		title = firstHeadingText(doc.Blocks)
	}
	if title == "" {
		title = "untitled"
	}

	text, err := r.TitleSlide(title, doc.Meta.Author)
	if err != nil {
		return nil, err
	}
	slides := []Slide{newSlide(0, title, text)}

	for _, c := range Split(doc.Blocks, opts.SlideLevel) {
		text, err := r.RenderPass(c.Blocks)
		if err != nil {
			return nil, err
		}
		slides = append(slides, newSlide(len(slides), c.Title, text))
	}

	return &Deck{
		ID:        uuid.NewString(),
		Source:    source,
		Options:   opts,
		Slides:    slides,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func newSlide(seq int, title, text string) Slide {
	return Slide{
		Seq:        seq,
		Name:       fmt.Sprintf("%03d-%s", seq, slugify(title)),
		Text:       text,
		Executable: strings.HasPrefix(text, "#!"),
	}
}

// Write writes every slide unit and the manifest under dir. A failed
// write aborts the remaining units; files already written stay in place.
func (d *Deck) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create deck directory %s", dir)
	}

	names := make([]string, len(d.Slides))
	for i, s := range d.Slides {
		names[i] = s.Name
		perm := os.FileMode(0o644)
		if s.Executable {
			perm = 0o755
		}
		path := filepath.Join(dir, s.Name)
		if err := os.WriteFile(path, []byte(s.Text), perm); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write slide %s", path)
		}
	}

	m := manifest{
		ID:        d.ID,
		Source:    d.Source,
		Options:   d.Options,
		Slides:    names,
		CreatedAt: d.CreatedAt,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode deck manifest")
	}
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write deck manifest %s", path)
	}
	return nil
}

// Read loads a previously written deck from dir.
func Read(dir string) (*Deck, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "no deck manifest in %s", dir)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read deck manifest")
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse deck manifest")
	}

	d := &Deck{ID: m.ID, Source: m.Source, Options: m.Options, CreatedAt: m.CreatedAt}
	for i, name := range m.Slides {
		text, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "read slide %s", name)
		}
		d.Slides = append(d.Slides, Slide{
			Seq:        i,
			Name:       name,
			Text:       string(text),
			Executable: strings.HasPrefix(string(text), "#!"),
		})
	}
	return d, nil
}

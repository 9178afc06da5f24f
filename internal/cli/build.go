package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/termdeck/termdeck/pkg/cache"
	"github.com/termdeck/termdeck/pkg/deck"
	"github.com/termdeck/termdeck/pkg/doctree"
	"github.com/termdeck/termdeck/pkg/errors"
	"github.com/termdeck/termdeck/pkg/render"
	"github.com/termdeck/termdeck/pkg/tools"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output     string // output directory (default <file>.deck)
	columns    int    // slide width override
	rows       int    // slide height override
	slideLevel int    // heading level that starts a new slide
	ascii      bool   // disable unicode glyphs
	noColor    bool   // disable color accents
	noItalic   bool   // render emphasis as underline
	font       string // figlet font for banner headings
	theme      string // syntax highlighting theme
	noCache    bool   // bypass the render cache
}

// newBuildCmd creates the build command, the main rendering pipeline:
// load → chunk → render → write slide units and manifest.
func newBuildCmd() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build <file.md>",
		Short: "Render a Markdown file into a slide deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default <file>.deck)")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "slide width in columns (default terminal width)")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "slide height in rows (default terminal height)")
	cmd.Flags().IntVar(&opts.slideLevel, "slide-level", 0, "heading level that starts a new slide")
	cmd.Flags().BoolVar(&opts.ascii, "ascii", false, "disable unicode glyphs")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable color accents")
	cmd.Flags().BoolVar(&opts.noItalic, "no-italic", false, "render emphasis as underline instead of italics")
	cmd.Flags().StringVar(&opts.font, "font", "", "figlet font for banner headings")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "syntax highlighting theme")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// renderOptions resolves the effective render options. Precedence, lowest
// first: built-in defaults, queried terminal size, config file, document
// metadata (rows/cols), command-line flags.
func renderOptions(meta doctree.Meta, opts *buildOpts) (render.Options, error) {
	ropts := render.DefaultOptions()
	ropts.Rows, ropts.Columns = tools.TerminalSize()

	cfg, err := loadConfig()
	if err != nil {
		return ropts, err
	}
	ropts = cfg.apply(ropts)

	if meta.Rows > 0 {
		ropts.Rows = meta.Rows
	}
	if meta.Cols > 0 {
		ropts.Columns = meta.Cols
	}

	if opts.columns > 0 {
		ropts.Columns = opts.columns
	}
	if opts.rows > 0 {
		ropts.Rows = opts.rows
	}
	if opts.slideLevel > 0 {
		ropts.SlideLevel = opts.slideLevel
	}
	if opts.ascii {
		ropts.Unicode = false
	}
	if opts.noColor {
		ropts.Color = false
	}
	if opts.noItalic {
		ropts.Italic = false
	}
	if opts.font != "" {
		ropts.Font = opts.font
	}
	if opts.theme != "" {
		ropts.Theme = opts.theme
	}
	return ropts, nil
}

func runBuild(cmd *cobra.Command, path string, opts *buildOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "read source %s", path)
	}
	doc, err := doctree.LoadMarkdown(src)
	if err != nil {
		return err
	}

	ropts, err := renderOptions(doc.Meta, opts)
	if err != nil {
		return err
	}
	if err := ropts.Validate(); err != nil {
		return err
	}

	outDir := opts.output
	if outDir == "" {
		outDir = strings.TrimSuffix(path, filepath.Ext(path)) + ".deck"
	}

	store, err := newStore(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	// Rendering is deterministic, so a deck built from identical source
	// bytes and options can be replayed from cache.
	key := cache.Key("deck", src, ropts)
	var d *deck.Deck
	cached := false
	if data, hit, err := store.Get(ctx, key); err != nil {
		logger.Debug("cache read failed", "err", err)
	} else if hit {
		var stored deck.Deck
		if err := json.Unmarshal(data, &stored); err == nil {
			d = &stored
			cached = true
			logger.Debug("deck served from cache", "key", key)
		}
	}

	if d == nil {
		banner := func(text string, width int) (string, error) {
			return tools.Banner(text, width, ropts.Font)
		}
		highlight := func(code, language string) (string, error) {
			return tools.Highlight(code, language, ropts.Theme)
		}
		d, err = deck.Build(doc, path, ropts, banner, highlight)
		if err != nil {
			p.fail("Render failed")
			return err
		}
		if data, err := json.Marshal(d); err == nil {
			if err := store.Set(ctx, key, data, 0); err != nil {
				logger.Debug("cache write failed", "err", err)
			}
		}
	}

	if err := d.Write(outDir); err != nil {
		p.fail("Write failed")
		return err
	}

	p.done(fmt.Sprintf("Rendered %d slides", len(d.Slides)))
	printSuccess("Built %s", outDir)
	printDeckStats(len(d.Slides), cached)
	for _, s := range d.Slides {
		printFile(filepath.Join(outDir, s.Name))
	}
	return nil
}

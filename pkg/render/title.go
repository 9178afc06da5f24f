package render

import "github.com/termdeck/termdeck/pkg/layout"

// TitleSlide renders the deck's opening slide from document metadata: the
// title in banner letters, vertically centered, with the author line above
// it when present.
func (r *Renderer) TitleSlide(title, author string) (string, error) {
	text, err := r.banner(title, r.opts.Columns)
	if err != nil {
		return "", err
	}
	body := layout.Verbatim(text)

	if author != "" {
		style := "italic"
		if !r.opts.Italic {
			style = "faint"
		}
		line, err := layout.StyleText(author, style)
		if err != nil {
			return "", err
		}
		body = layout.Paragraphs(line, body)
	}

	doc := layout.VCenter(layout.HCenter(body, r.opts.Columns), r.opts.Rows)
	return layout.Render(doc, r.opts.Columns), nil
}

package report

import (
	"bytes"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderHTML renders r's markdown as a standalone HTML page.
func RenderHTML(w io.Writer, r Renderable) error {
	var md bytes.Buffer
	if err := r.RenderMarkdown(&md); err != nil {
		return err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "chronostat report",
	})
	_, err := w.Write(markdown.ToHTML(md.Bytes(), p, renderer))
	return err
}

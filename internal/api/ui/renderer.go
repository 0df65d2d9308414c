// Package ui renders the campaign analysis page from a view snapshot with
// Liquid templates.
package ui

import (
	_ "embed"
	"fmt"
	"html"
	"io"

	"github.com/osteele/liquid"

	"github.com/ignite/campaign-insights/internal/view"
)

//go:embed templates/page.liquid
var pageSource []byte

// Renderer holds the parsed page template. It is safe for concurrent use.
type Renderer struct {
	page *liquid.Template
}

// New parses the embedded page template.
func New() (*Renderer, error) {
	engine := liquid.NewEngine()

	// HTML escape (safety): {{ user_input | escape }}
	engine.RegisterFilter("escape", func(s string) string {
		return html.EscapeString(s)
	})

	tpl, err := engine.ParseTemplate(pageSource)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{page: tpl}, nil
}

// Render writes the page for s.
func (r *Renderer) Render(w io.Writer, s view.Snapshot) error {
	out, err := r.page.Render(Model(s))
	if err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	_, werr := w.Write(out)
	return werr
}

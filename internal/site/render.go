// Package site renders the homepage for one language.
package site

import (
	"context"
	"fmt"

	"github.com/fjvico/homepage/internal/loader"
	"github.com/fjvico/homepage/internal/page"
)

// Rendered is a finished page and how its content was obtained.
type Rendered struct {
	HTML   []byte
	Result loader.Result
}

type Renderer struct {
	host   []byte
	loader *loader.Loader
}

// NewRenderer checks that host parses before any request depends on it.
func NewRenderer(host []byte, l *loader.Loader) (*Renderer, error) {
	if _, err := page.FromBytes(host); err != nil {
		return nil, err
	}
	return &Renderer{host: host, loader: l}, nil
}

// Render fills a fresh copy of the host page with the content for code.
// Fetch failures are not errors here: the page falls back to the built-in
// content and the result says so.
func (r *Renderer) Render(ctx context.Context, code string) (Rendered, error) {
	pg, err := page.FromBytes(r.host)
	if err != nil {
		return Rendered{}, err
	}

	res := loader.NewSession(r.loader, pg, code).Switch(ctx, code)
	pg.PrepareChrome(code)

	html, err := pg.Bytes()
	if err != nil {
		return Rendered{}, fmt.Errorf("render %s: %w", code, err)
	}
	return Rendered{HTML: html, Result: res}, nil
}

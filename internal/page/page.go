// Package page wraps the host HTML document so content can be written into
// elements addressed by their id attribute.
package page

import (
	"bytes"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Page is one parsed copy of the host document. It is not safe for
// concurrent use; every render gets its own Page.
type Page struct {
	doc *goquery.Document
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse host page: %w", err)
	}
	return &Page{doc: doc}, nil
}

// FromBytes parses a template held in memory.
func FromBytes(b []byte) (*Page, error) {
	return Parse(bytes.NewReader(b))
}

func (p *Page) byID(id string) *goquery.Selection {
	return p.doc.Find(`[id="` + id + `"]`).First()
}

// SetText replaces the element's children with a single text node.
func (p *Page) SetText(id, text string) bool {
	sel := p.byID(id)
	if sel.Length() == 0 {
		return false
	}
	sel.SetText(text)
	return true
}

// SetHTML replaces the element's children with parsed markup.
func (p *Page) SetHTML(id, html string) bool {
	sel := p.byID(id)
	if sel.Length() == 0 {
		return false
	}
	sel.SetHtml(html)
	return true
}

// Text returns the element's text content.
func (p *Page) Text(id string) (string, bool) {
	sel := p.byID(id)
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Text(), true
}

// HTML returns the element's inner markup.
func (p *Page) HTML(id string) (string, bool) {
	sel := p.byID(id)
	if sel.Length() == 0 {
		return "", false
	}
	html, err := sel.Html()
	if err != nil {
		return "", false
	}
	return html, true
}

// HasClass reports whether the first element matching selector has class.
func (p *Page) HasClass(selector, class string) bool {
	return p.doc.Find(selector).First().HasClass(class)
}

// Render writes the whole document.
func (p *Page) Render(w io.Writer) error {
	html, err := p.doc.Html()
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err = io.WriteString(w, html)
	return err
}

// Bytes renders the document into memory.
func (p *Page) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

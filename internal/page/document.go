// Package page reads dashboard payloads from HTML documents and writes rendered
// charts back into them.
package page

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// byID returns the first element whose id attribute equals id.
func (d *Document) byID(id string) *goquery.Selection {
	return d.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
}

// Text returns the text content of the element with the given id.
func (d *Document) Text(id string) (string, bool) {
	sel := d.byID(id)
	if sel.Length() == 0 {
		return "", false
	}
	return sel.Text(), true
}

// HasSurface reports whether an element with the given id exists.
func (d *Document) HasSurface(id string) bool {
	return d.byID(id).Length() > 0
}

// Mount replaces the element with the given id by markup.
func (d *Document) Mount(id, markup string) error {
	sel := d.byID(id)
	if sel.Length() == 0 {
		return fmt.Errorf("no element with id %q", id)
	}
	sel.ReplaceWithHtml(markup)
	return nil
}

// AppendScript appends an inline script to the end of the body.
func (d *Document) AppendScript(js string) {
	body := d.doc.Find("body")
	if body.Length() == 0 {
		body = d.doc.Selection
	}
	body.AppendHtml("<script>\n" + js + "</script>\n")
}

// HTML serializes the document.
func (d *Document) HTML() ([]byte, error) {
	out, err := d.doc.Html()
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return []byte(out), nil
}

// Package document wraps a parsed HTML page with the read-only queries
// the analyzers need.
package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Meta is one <meta> tag.
type Meta struct {
	Name     string
	Property string
	Content  string
}

// Image is one <img> tag.
type Image struct {
	Src string
	Alt string
}

// Anchor is one <a> tag.
type Anchor struct {
	Href string
	Rel  string
}

// Document is an immutable view over a parsed HTML page. It is shared
// by reference across all extractors of one analysis request and never
// reused across requests.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from raw HTML. Malformed or partial markup
// degrades to an empty or partial tree; Parse never fails.
func Parse(html string) *Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return &Document{doc: doc}
}

// Title returns the text content of the first <title> element.
func (d *Document) Title() string {
	if d.doc == nil {
		return ""
	}
	return d.doc.Find("title").First().Text()
}

// Metas returns every <meta> tag in document order.
func (d *Document) Metas() []Meta {
	if d.doc == nil {
		return nil
	}
	var metas []Meta
	d.doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		metas = append(metas, Meta{
			Name:     s.AttrOr("name", ""),
			Property: s.AttrOr("property", ""),
			Content:  s.AttrOr("content", ""),
		})
	})
	return metas
}

// HeadingTexts returns the trimmed text of every element with the given
// heading tag ("h1".."h6"), in document order.
func (d *Document) HeadingTexts(tag string) []string {
	if d.doc == nil {
		return nil
	}
	texts := make([]string, 0)
	d.doc.Find(tag).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

// Images returns every <img> tag in document order.
func (d *Document) Images() []Image {
	if d.doc == nil {
		return nil
	}
	var images []Image
	d.doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		images = append(images, Image{
			Src: s.AttrOr("src", ""),
			Alt: s.AttrOr("alt", ""),
		})
	})
	return images
}

// Anchors returns every <a> tag in document order.
func (d *Document) Anchors() []Anchor {
	if d.doc == nil {
		return nil
	}
	var anchors []Anchor
	d.doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		anchors = append(anchors, Anchor{
			Href: s.AttrOr("href", ""),
			Rel:  s.AttrOr("rel", ""),
		})
	})
	return anchors
}

// Viewport returns the content attribute of the first
// <meta name="viewport"> tag, and whether one exists.
func (d *Document) Viewport() (string, bool) {
	if d.doc == nil {
		return "", false
	}
	sel := d.doc.Find(`meta[name="viewport"]`).First()
	if sel.Length() == 0 {
		return "", false
	}
	return sel.AttrOr("content", ""), true
}

// JSONLDBlocks returns the raw text of every
// <script type="application/ld+json"> element.
func (d *Document) JSONLDBlocks() []string {
	if d.doc == nil {
		return nil
	}
	var blocks []string
	d.doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		blocks = append(blocks, s.Text())
	})
	return blocks
}

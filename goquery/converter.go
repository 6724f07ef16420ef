// Package goquery narrows rendered documentation pages to their article
// content before conversion, so navigation chrome does not end up in the
// index.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/navsearch"
)

// Ensure Converter implements navsearch.Converter at compile time.
var _ navsearch.Converter = (*Converter)(nil)

// chrome lists elements that never hold page content.
const chrome = "script, style, noscript, nav, aside, body > header, body > footer, " +
	"[role='navigation'], [role='banner'], [role='contentinfo'], .sidebar, .toc"

// Converter extracts the content region of a page and passes it to the next
// converter. Pages without a recognizable content region are passed on whole,
// minus chrome.
type Converter struct {
	next     navsearch.Converter
	detector *Detector
}

// NewConverter returns a Converter that delegates to next.
func NewConverter(next navsearch.Converter) *Converter {
	return &Converter{next: next, detector: NewDetector()}
}

// Convert extracts the page content and converts it.
func (c *Converter) Convert(html string) (string, error) {
	content, err := c.Extract(html)
	if err != nil {
		return "", err
	}
	return c.next.Convert(content)
}

// Extract returns the HTML of the page's content region.
func (c *Converter) Extract(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", navsearch.Errorf(navsearch.EINVALID, "empty HTML")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", navsearch.Errorf(navsearch.EINVALID, "parse HTML: %v", err)
	}

	region := doc.Find("body")
	for _, selector := range contentSelectors(c.detector.Detect(doc)) {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			region = sel
			break
		}
	}
	region.Find(chrome).Remove()

	out, err := goquery.OuterHtml(region)
	if err != nil {
		return "", navsearch.Errorf(navsearch.EINVALID, "render HTML: %v", err)
	}
	return out, nil
}

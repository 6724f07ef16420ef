package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Framework identifies the generator that built a documentation page.
type Framework string

// Known documentation frameworks.
const (
	FrameworkUnknown    Framework = ""
	FrameworkDocusaurus Framework = "docusaurus"
	FrameworkMkDocs     Framework = "mkdocs"
	FrameworkSphinx     Framework = "sphinx"
	FrameworkVitePress  Framework = "vitepress"
	FrameworkVuePress   Framework = "vuepress"
	FrameworkGitBook    Framework = "gitbook"
	FrameworkNextra     Framework = "nextra"
)

// frameworkContent maps a framework to the selectors of its article body,
// most specific first.
var frameworkContent = map[Framework][]string{
	FrameworkDocusaurus: {"article .theme-doc-markdown", "article"},
	FrameworkMkDocs:     {".md-content__inner", ".md-content"},
	FrameworkSphinx:     {"div[role='main']", ".document .body"},
	FrameworkVitePress:  {".vp-doc", "#VPContent"},
	FrameworkVuePress:   {".theme-default-content"},
	FrameworkGitBook:    {"main [data-testid='page.contentEditor']", "main"},
	FrameworkNextra:     {"main .nextra-content", "article"},
}

// genericContent applies to every page after the framework selectors.
var genericContent = []string{"main article", "main", "article", "[role='main']", "#content"}

func contentSelectors(f Framework) []string {
	return append(append([]string(nil), frameworkContent[f]...), genericContent...)
}

// Detector identifies documentation frameworks from framework-specific
// classes, data attributes and the generator meta tag.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the framework that generated doc, or FrameworkUnknown.
func (d *Detector) Detect(doc *goquery.Document) Framework {
	// Meta generator tags are the most reliable signal when present.
	if f := d.fromGenerator(doc); f != FrameworkUnknown {
		return f
	}

	switch {
	case has(doc, "#__docusaurus_skipToContent_fallback", ".theme-doc-sidebar-container"):
		return FrameworkDocusaurus
	case has(doc, "[data-md-color-scheme]", "[data-md-component]", ".md-nav--primary"):
		return FrameworkMkDocs
	case has(doc, ".toctree-wrapper", ".wy-nav-side", ".sphinxsidebar"):
		return FrameworkSphinx
	// VitePress before VuePress: it reuses some VuePress class names.
	case has(doc, "#VPContent", ".VPDoc"):
		return FrameworkVitePress
	case has(doc, ".theme-default-content", ".vuepress-navbar"):
		return FrameworkVuePress
	case has(doc, "[data-testid='space.sidebar']", "[data-testid='page.desktopTableOfContents']"):
		return FrameworkGitBook
	case has(doc, ".nextra-navbar", ".nextra-sidebar", ".nextra-toc"):
		return FrameworkNextra
	}
	return FrameworkUnknown
}

func (d *Detector) fromGenerator(doc *goquery.Document) Framework {
	generator, _ := doc.Find("meta[name='generator']").Last().Attr("content")
	generator = strings.ToLower(generator)
	if generator == "" {
		return FrameworkUnknown
	}

	// vitepress must be checked before vuepress.
	for _, f := range []Framework{FrameworkSphinx, FrameworkGitBook, FrameworkDocusaurus, FrameworkMkDocs, FrameworkVitePress, FrameworkVuePress, FrameworkNextra} {
		if strings.Contains(generator, string(f)) {
			return f
		}
	}
	return FrameworkUnknown
}

func has(doc *goquery.Document, selectors ...string) bool {
	for _, s := range selectors {
		if doc.Find(s).Length() > 0 {
			return true
		}
	}
	return false
}

package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/navsearch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want goquery.Framework
	}{
		{"docusaurus marker", `<div id="__docusaurus_skipToContent_fallback"></div>`, goquery.FrameworkDocusaurus},
		{"mkdocs marker", `<body data-md-color-scheme="slate"></body>`, goquery.FrameworkMkDocs},
		{"sphinx marker", `<div class="wy-nav-side"></div>`, goquery.FrameworkSphinx},
		{"vitepress before vuepress", `<div id="VPContent" class="theme-default-content"></div>`, goquery.FrameworkVitePress},
		{"vuepress marker", `<div class="theme-default-content"></div>`, goquery.FrameworkVuePress},
		{"gitbook marker", `<aside data-testid="space.sidebar"></aside>`, goquery.FrameworkGitBook},
		{"nextra marker", `<nav class="nextra-navbar"></nav>`, goquery.FrameworkNextra},
		{"vitepress generator", `<meta name="generator" content="VitePress v1.0.0">`, goquery.FrameworkVitePress},
		{"generator wins over markers", `<meta name="generator" content="MkDocs 1.5"><div class="wy-nav-side"></div>`, goquery.FrameworkMkDocs},
		{"unknown", `<main><h1>Docs</h1></main>`, goquery.FrameworkUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := gq.NewDocumentFromReader(strings.NewReader(tt.html))
			require.NoError(t, err)

			assert.Equal(t, tt.want, goquery.NewDetector().Detect(doc))
		})
	}
}

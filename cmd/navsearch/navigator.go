package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fwojciec/navsearch"
)

var _ navsearch.Navigator = (*SiteNavigator)(nil)

// SiteNavigator resolves routes against the site's registry and manifests
// and prints where a route leads. Registry and manifests are fetched once
// and cached.
type SiteNavigator struct {
	source navsearch.Source
	w      io.Writer

	mu        sync.Mutex
	registry  *navsearch.Registry
	manifests map[string]*navsearch.Manifest
}

// NewSiteNavigator returns a SiteNavigator printing to w.
func NewSiteNavigator(source navsearch.Source, w io.Writer) *SiteNavigator {
	return &SiteNavigator{
		source:    source,
		w:         w,
		manifests: make(map[string]*navsearch.Manifest),
	}
}

// Navigate prints the page a route resolves to and the next chapter in its
// category. A route without a category uses the default category and a
// route without a page uses the category's default page.
func (n *SiteNavigator) Navigate(ctx context.Context, route navsearch.Route) error {
	registry, err := n.loadRegistry(ctx)
	if err != nil {
		return err
	}

	category := registry.DefaultCategory()
	if route.Category != "" {
		category = registry.FindCategory(route.Category)
	}
	if category == nil {
		return navsearch.Errorf(navsearch.ENOTFOUND, "category %q not found", route.Category)
	}
	route.Category = category.ID
	if route.Page == "" {
		route.Page = category.DefaultPage
	}

	manifest, err := n.loadManifest(ctx, category)
	if err != nil {
		return err
	}

	page := manifest.FindPage(route.Page)
	if page == nil {
		return navsearch.Errorf(navsearch.ENOTFOUND, "page %q not found in category %q", route.Page, category.ID)
	}

	heading := category.Heading
	if heading == "" {
		heading = "Documentation"
	}

	fmt.Fprintf(n.w, "%s > %s\n", heading, page.Title)
	fmt.Fprintf(n.w, "  %s\n", route.Hash())
	fmt.Fprintf(n.w, "  path: %s\n", page.Page)
	if next := manifest.NextPage(route.Page); next != nil {
		fmt.Fprintf(n.w, "  Next Chapter: %s\n", next.Title)
	} else {
		fmt.Fprintf(n.w, "  End of %s\n", heading)
	}
	return nil
}

func (n *SiteNavigator) loadRegistry(ctx context.Context) (*navsearch.Registry, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.registry != nil {
		return n.registry, nil
	}
	registry, err := n.source.FetchRegistry(ctx)
	if err != nil {
		return nil, err
	}
	n.registry = registry
	return registry, nil
}

func (n *SiteNavigator) loadManifest(ctx context.Context, c *navsearch.Category) (*navsearch.Manifest, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if m, ok := n.manifests[c.ID]; ok {
		return m, nil
	}
	if c.DataFile == "" {
		return nil, navsearch.Errorf(navsearch.ENOTFOUND, "category %q has no pages", c.ID)
	}
	m, err := n.source.FetchManifest(ctx, c.DataFile)
	if err != nil {
		return nil, err
	}
	n.manifests[c.ID] = m
	return m, nil
}

// routePrinter prints the route hash. It stands in for SiteNavigator when
// searching a snapshot without a site configured.
type routePrinter struct {
	w io.Writer
}

func (p *routePrinter) Navigate(_ context.Context, route navsearch.Route) error {
	_, err := fmt.Fprintln(p.w, route.Hash())
	return err
}

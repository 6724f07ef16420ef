package http

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/fwojciec/navsearch"
)

// Ensure Source implements navsearch.Source at compile time.
var _ navsearch.Source = (*Source)(nil)

// Source reads a documentation site relative to a base URL.
type Source struct {
	base         *url.URL
	registryPath string
	fetcher      navsearch.Fetcher
	renderer     navsearch.Fetcher
	limiter      navsearch.DomainLimiter
	converter    navsearch.Converter
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithRegistryPath sets the registry location relative to the base URL.
// Defaults to navsearch.DefaultRegistryPath.
func WithRegistryPath(path string) SourceOption {
	return func(s *Source) {
		if path != "" {
			s.registryPath = path
		}
	}
}

// WithFetcher sets the fetcher used for every request.
// Defaults to a Fetcher with DefaultFetchTimeout.
func WithFetcher(f navsearch.Fetcher) SourceOption {
	return func(s *Source) {
		s.fetcher = f
	}
}

// WithRenderer fetches HTML pages through r instead of the default fetcher,
// for sites that build their pages with JavaScript. Navigation documents
// and markdown pages still use the default fetcher.
func WithRenderer(r navsearch.Fetcher) SourceOption {
	return func(s *Source) {
		s.renderer = r
	}
}

// WithLimiter paces requests through l, keyed by host.
func WithLimiter(l navsearch.DomainLimiter) SourceOption {
	return func(s *Source) {
		s.limiter = l
	}
}

// WithConverter converts HTML pages to markdown before they are returned.
func WithConverter(c navsearch.Converter) SourceOption {
	return func(s *Source) {
		s.converter = c
	}
}

// NewSource returns a Source rooted at baseURL.
func NewSource(baseURL string, opts ...SourceOption) (*Source, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, navsearch.Errorf(navsearch.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, navsearch.Errorf(navsearch.EINVALID, "base URL must be http or https: %q", baseURL)
	}

	s := &Source{
		base:         base,
		registryPath: navsearch.DefaultRegistryPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fetcher == nil {
		s.fetcher = NewFetcher()
	}
	return s, nil
}

// URL resolves a site path against the base URL. A path without a leading
// slash is joined with one.
func (s *Source) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.base.String() + path
}

// FetchRegistry retrieves and decodes the registry document.
func (s *Source) FetchRegistry(ctx context.Context) (*navsearch.Registry, error) {
	var registry navsearch.Registry
	if err := s.fetchJSON(ctx, s.registryPath, &registry); err != nil {
		return nil, &navsearch.FetchError{Kind: navsearch.FetchRegistry, Target: s.registryPath, Err: err}
	}
	return &registry, nil
}

// FetchManifest retrieves and decodes a category manifest.
func (s *Source) FetchManifest(ctx context.Context, dataFile string) (*navsearch.Manifest, error) {
	var manifest navsearch.Manifest
	if err := s.fetchJSON(ctx, dataFile, &manifest); err != nil {
		return nil, &navsearch.FetchError{Kind: navsearch.FetchManifest, Target: dataFile, Err: err}
	}
	return &manifest, nil
}

// FetchPage retrieves a page body as markdown. HTML pages are converted
// when a converter is configured.
func (s *Source) FetchPage(ctx context.Context, page string) (string, error) {
	fetcher := s.fetcher
	if s.renderer != nil && navsearch.IsHTMLPage(page) {
		fetcher = s.renderer
	}
	body, err := s.fetch(ctx, fetcher, page)
	if err != nil {
		return "", &navsearch.FetchError{Kind: navsearch.FetchPage, Target: page, Err: err}
	}
	if s.converter != nil && navsearch.IsHTMLPage(page) {
		body, err = s.converter.Convert(body)
		if err != nil {
			return "", &navsearch.FetchError{Kind: navsearch.FetchPage, Target: page, Err: err}
		}
	}
	return body, nil
}

func (s *Source) fetch(ctx context.Context, f navsearch.Fetcher, path string) (string, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, s.base.Host); err != nil {
			return "", err
		}
	}
	return f.Fetch(ctx, s.URL(path))
}

func (s *Source) fetchJSON(ctx context.Context, path string, v any) error {
	body, err := s.fetch(ctx, s.fetcher, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return navsearch.Errorf(navsearch.EINVALID, "decode %s: %v", path, err)
	}
	return nil
}

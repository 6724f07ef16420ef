// Package fs reads a documentation site from a local checkout, so a site can
// be indexed without serving it over HTTP.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"strings"

	"github.com/fwojciec/navsearch"
)

// Ensure Source implements navsearch.Source at compile time.
var _ navsearch.Source = (*Source)(nil)

// Source implements navsearch.Source over an fs.FS rooted at the site root.
type Source struct {
	fsys         iofs.FS
	registryPath string
	converter    navsearch.Converter
}

// Option configures a Source.
type Option func(*Source)

// WithRegistryPath sets the registry location relative to the site root.
// Defaults to navsearch.DefaultRegistryPath.
func WithRegistryPath(p string) Option {
	return func(s *Source) {
		if p != "" {
			s.registryPath = p
		}
	}
}

// WithConverter converts HTML pages to markdown before they are returned.
func WithConverter(c navsearch.Converter) Option {
	return func(s *Source) {
		s.converter = c
	}
}

// NewSource returns a Source reading from fsys.
func NewSource(fsys iofs.FS, opts ...Option) *Source {
	s := &Source{
		fsys:         fsys,
		registryPath: navsearch.DefaultRegistryPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewDirSource returns a Source reading from the directory dir.
func NewDirSource(dir string, opts ...Option) (*Source, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, navsearch.Errorf(navsearch.EINVALID, "site directory: %v", err)
	}
	if !info.IsDir() {
		return nil, navsearch.Errorf(navsearch.EINVALID, "site directory: %s is not a directory", dir)
	}
	return NewSource(os.DirFS(dir), opts...), nil
}

// FetchRegistry reads and decodes the registry document.
func (s *Source) FetchRegistry(ctx context.Context) (*navsearch.Registry, error) {
	var registry navsearch.Registry
	if err := s.readJSON(ctx, s.registryPath, &registry); err != nil {
		return nil, &navsearch.FetchError{Kind: navsearch.FetchRegistry, Target: s.registryPath, Err: err}
	}
	return &registry, nil
}

// FetchManifest reads and decodes a category manifest.
func (s *Source) FetchManifest(ctx context.Context, dataFile string) (*navsearch.Manifest, error) {
	var manifest navsearch.Manifest
	if err := s.readJSON(ctx, dataFile, &manifest); err != nil {
		return nil, &navsearch.FetchError{Kind: navsearch.FetchManifest, Target: dataFile, Err: err}
	}
	return &manifest, nil
}

// FetchPage reads a page as markdown, converting HTML pages when a
// converter is configured.
func (s *Source) FetchPage(ctx context.Context, page string) (string, error) {
	body, err := s.read(ctx, page)
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

func (s *Source) read(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p, err := SitePath(name)
	if err != nil {
		return "", err
	}

	data, err := iofs.ReadFile(s.fsys, p)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", navsearch.Errorf(navsearch.ENOTFOUND, "file not found: %s", p)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Source) readJSON(ctx context.Context, name string, v any) error {
	body, err := s.read(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return navsearch.Errorf(navsearch.EINVALID, "decode %s: %v", name, err)
	}
	return nil
}

// SitePath converts a site path such as "/navigation/nav.json" or
// "guides/install.md" to a path valid for fs.FS. Paths that resolve outside
// the site root are rejected.
// Example: /navigation/../guides/install.md → guides/install.md
func SitePath(name string) (string, error) {
	p := path.Clean(strings.TrimPrefix(name, "/"))
	if p == "." || !iofs.ValidPath(p) {
		return "", navsearch.Errorf(navsearch.EINVALID, "invalid site path: %q", name)
	}
	return p, nil
}

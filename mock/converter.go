package mock

import "github.com/fwojciec/navsearch"

var _ navsearch.Converter = (*Converter)(nil)

// Converter is a mock implementation of navsearch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

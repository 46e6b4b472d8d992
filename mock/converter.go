package mock

import "github.com/fwojciec/wikiwalk"

var _ wikiwalk.Converter = (*Converter)(nil)

// Converter is a mock implementation of wikiwalk.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

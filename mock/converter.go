package mock

import "github.com/fwojciec/zhextract"

var _ zhextract.Converter = (*Converter)(nil)

// Converter is a mock implementation of zhextract.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

package mock

import qtdoc "github.com/jztan/qt4-doc-mcp-server"

var _ qtdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of qtdoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

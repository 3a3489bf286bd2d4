package csvimport

import (
	"fmt"
	"io"
)

// Parser turns an upload into headers and rows
type Parser interface {
	Parse(r io.Reader) ([]string, []*Row, error)
}

// ParserFor returns the parser for format
func ParserFor(format Format) (Parser, error) {
	switch format {
	case FormatCSV:
		return NewCSVParser(), nil
	case FormatXLSX:
		return NewXLSXReader(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

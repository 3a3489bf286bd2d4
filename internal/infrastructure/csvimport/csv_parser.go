package csvimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// CSVParser reads UTF-8 CSV with an optional BOM
type CSVParser struct {
	delimiter  rune
	lazyQuotes bool
}

// ParserOption is a functional option for CSVParser configuration
type ParserOption func(*CSVParser)

// WithDelimiter sets the field delimiter (default is comma)
func WithDelimiter(d rune) ParserOption {
	return func(p *CSVParser) {
		p.delimiter = d
	}
}

// NewCSVParser creates a parser with lazy quotes enabled
func NewCSVParser(opts ...ParserOption) *CSVParser {
	p := &CSVParser{delimiter: ',', lazyQuotes: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the normalized headers and the non-blank data rows
func (p *CSVParser) Parse(r io.Reader) ([]string, []*Row, error) {
	br := bufio.NewReader(r)

	bom, err := br.Peek(3)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bom) == 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	head, err := br.Peek(br.Size())
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(head) == 0 {
		return nil, nil, ErrEmptyFile
	}
	if !validUTF8Prefix(head, len(head) == br.Size()) {
		return nil, nil, ErrInvalidEncoding
	}

	reader := csv.NewReader(br)
	reader.Comma = p.delimiter
	reader.LazyQuotes = p.lazyQuotes
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	if len(records) == 0 {
		return nil, nil, ErrMissingHeader
	}

	headers, err := normalizeHeaders(records[0])
	if err != nil {
		return nil, nil, err
	}
	return headers, buildRows(headers, records[1:], 2), nil
}

// validUTF8Prefix checks b, ignoring a trailing rune cut off by a full peek window
func validUTF8Prefix(b []byte, truncated bool) bool {
	if truncated {
		for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
			if utf8.RuneStart(b[len(b)-i]) {
				if !utf8.FullRune(b[len(b)-i:]) {
					b = b[:len(b)-i]
				}
				break
			}
		}
	}
	return utf8.Valid(b)
}

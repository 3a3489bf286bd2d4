package csvimport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads the first worksheet of an XLSX workbook
type XLSXReader struct{}

// NewXLSXReader creates an XLSX reader
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

// Parse returns the normalized headers and the non-blank data rows
func (x *XLSXReader) Parse(r io.Reader) ([]string, []*Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyFile
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyFile
	}

	headers, err := normalizeHeaders(records[0])
	if err != nil {
		return nil, nil, err
	}
	return headers, buildRows(headers, records[1:], 2), nil
}

// Package csvimport reads tabular customer uploads (CSV or XLSX) into
// header-keyed rows and validates them against column rules.
package csvimport

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Format of an uploaded file
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks the format from the file name, then the content type
func DetectFormat(fileName, contentType string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".txt":
		return FormatCSV, true
	case ".xlsx":
		return FormatXLSX, true
	}
	switch {
	case strings.Contains(contentType, "spreadsheetml"):
		return FormatXLSX, true
	case strings.HasPrefix(contentType, "text/csv"), strings.HasPrefix(contentType, "text/plain"):
		return FormatCSV, true
	}
	return "", false
}

// Row is one data row. LineNumber is 1-based and counts the header row.
type Row struct {
	LineNumber int
	Data       map[string]string
}

// Get returns the value for a column by header name
func (r *Row) Get(header string) string {
	return r.Data[header]
}

// GetOrDefault returns the value for a column, or def when absent or empty
func (r *Row) GetOrDefault(header, def string) string {
	if val, ok := r.Data[header]; ok && val != "" {
		return val
	}
	return def
}

// IsEmpty reports whether every cell is blank
func (r *Row) IsEmpty() bool {
	for _, v := range r.Data {
		if v != "" {
			return false
		}
	}
	return true
}

// NormalizeHeader turns "Tax Number" into "tax_number"
func NormalizeHeader(h string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.TrimSpace(h) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingSep = true
		}
	}
	return b.String()
}

// buildRows maps records onto headers, skipping blank rows. firstLine is
// the line number of records[0].
func buildRows(headers []string, records [][]string, firstLine int) []*Row {
	rows := make([]*Row, 0, len(records))
	for i, record := range records {
		row := &Row{LineNumber: firstLine + i, Data: make(map[string]string, len(headers))}
		for col, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if col < len(record) {
				value = strings.TrimSpace(record[col])
			}
			row.Data[header] = value
		}
		if !row.IsEmpty() {
			rows = append(rows, row)
		}
	}
	return rows
}

func normalizeHeaders(record []string) ([]string, error) {
	headers := make([]string, len(record))
	seen := false
	for i, h := range record {
		headers[i] = NormalizeHeader(h)
		if headers[i] != "" {
			seen = true
		}
	}
	if !seen {
		return nil, ErrMissingHeader
	}
	return headers, nil
}

package csvimport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestXLSXReader_Parse(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Name", "Email", "Currency Code"},
		{"Acme Ltd", "billing@acme.io", "GBP"},
		{"Globex", "", "USD"},
	})

	headers, rows, err := NewXLSXReader().Parse(buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "email", "currency_code"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].LineNumber)
	assert.Equal(t, "GBP", rows[0].Get("currency_code"))
	assert.Equal(t, "", rows[1].Get("email"))
}

func TestXLSXReader_NotAWorkbook(t *testing.T) {
	_, _, err := NewXLSXReader().Parse(bytes.NewBufferString("name,email\n"))
	assert.ErrorIs(t, err, ErrMalformedFile)
}

func TestParserFor(t *testing.T) {
	p, err := ParserFor(FormatXLSX)
	require.NoError(t, err)
	assert.IsType(t, &XLSXReader{}, p)

	_, err = ParserFor("ods")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var customerSchema = Schema{
	{Column: "name", Required: true, MaxLength: 10},
	{Column: "email", Email: true},
	{Column: "currency_code", Required: true, ExactLen: 3},
	{Column: "website", URL: true},
}

func TestSchema_Validate(t *testing.T) {
	t.Run("valid row", func(t *testing.T) {
		row := &Row{LineNumber: 2, Data: map[string]string{
			"name": "Acme", "email": "a@acme.io", "currency_code": "USD", "website": "https://acme.io",
		}}
		assert.Empty(t, customerSchema.Validate(row))
	})

	t.Run("collects every violation", func(t *testing.T) {
		row := &Row{LineNumber: 7, Data: map[string]string{
			"name": "A very long company", "email": "nope", "currency_code": "", "website": "acme",
		}}
		errs := customerSchema.Validate(row)
		require.Len(t, errs, 4)

		codes := map[string]string{}
		for _, e := range errs {
			assert.Equal(t, 7, e.Row)
			codes[e.Column] = e.Code
		}
		assert.Equal(t, map[string]string{
			"name":          ErrCodeImportInvalidLength,
			"email":         ErrCodeImportInvalidFormat,
			"currency_code": ErrCodeImportRequiredField,
			"website":       ErrCodeImportInvalidFormat,
		}, codes)
	})
}

func TestSchema_MissingColumns(t *testing.T) {
	assert.Equal(t, []string{"currency_code"}, customerSchema.MissingColumns([]string{"name", "email"}))
	assert.Empty(t, customerSchema.MissingColumns([]string{"name", "currency_code"}))
}

func TestErrorCollection(t *testing.T) {
	ec := NewErrorCollection(2)
	assert.False(t, ec.HasErrors())
	assert.Empty(t, ec.Errors())

	for i := 0; i < 3; i++ {
		ec.Add(RowError{Row: i + 2, Code: ErrCodeImportRowRejected, Message: "rejected"})
	}
	assert.Len(t, ec.Errors(), 2)
	assert.Equal(t, 3, ec.TotalCount())
	assert.True(t, ec.IsTruncated())
	assert.Equal(t, "row 2: rejected", ec.Errors()[0].Error())
	assert.Equal(t, "row 4, column 'email': bad", RowError{Row: 4, Column: "email", Message: "bad"}.Error())
}

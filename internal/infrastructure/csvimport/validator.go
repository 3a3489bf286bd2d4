package csvimport

import (
	"fmt"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldRule validates one column
type FieldRule struct {
	Column    string
	Required  bool
	MaxLength int
	ExactLen  int
	Email     bool
	URL       bool
}

// Schema is a list of column rules
type Schema []FieldRule

// Validate returns the rule violations of row
func (s Schema) Validate(row *Row) []RowError {
	var errs []RowError
	for _, rule := range s {
		value := row.Get(rule.Column)
		if value == "" {
			if rule.Required {
				errs = append(errs, RowError{
					Row: row.LineNumber, Column: rule.Column,
					Code:    ErrCodeImportRequiredField,
					Message: fmt.Sprintf("field '%s' is required", rule.Column),
				})
			}
			continue
		}

		length := utf8.RuneCountInString(value)
		switch {
		case rule.MaxLength > 0 && length > rule.MaxLength:
			errs = append(errs, RowError{
				Row: row.LineNumber, Column: rule.Column, Value: value,
				Code:    ErrCodeImportInvalidLength,
				Message: fmt.Sprintf("length must be at most %d", rule.MaxLength),
			})
		case rule.ExactLen > 0 && length != rule.ExactLen:
			errs = append(errs, RowError{
				Row: row.LineNumber, Column: rule.Column, Value: value,
				Code:    ErrCodeImportInvalidLength,
				Message: fmt.Sprintf("length must be exactly %d", rule.ExactLen),
			})
		case rule.Email && !isEmail(value):
			errs = append(errs, RowError{
				Row: row.LineNumber, Column: rule.Column, Value: value,
				Code:    ErrCodeImportInvalidFormat,
				Message: "invalid format, expected email",
			})
		case rule.URL && !isURL(value):
			errs = append(errs, RowError{
				Row: row.LineNumber, Column: rule.Column, Value: value,
				Code:    ErrCodeImportInvalidFormat,
				Message: "invalid format, expected url",
			})
		}
	}
	return errs
}

// MissingColumns returns the required columns absent from headers
func (s Schema) MissingColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, rule := range s {
		if rule.Required && !present[rule.Column] {
			missing = append(missing, rule.Column)
		}
	}
	return missing
}

func isEmail(v string) bool {
	return validate.Var(v, "email") == nil
}

func isURL(v string) bool {
	return validate.Var(v, "url") == nil
}

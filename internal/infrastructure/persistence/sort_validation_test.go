package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		fallback string
		expected string
	}{
		{"empty string returns default", "", "ASC", "ASC"},
		{"ASC uppercase", "ASC", "DESC", "ASC"},
		{"asc lowercase", "asc", "DESC", "ASC"},
		{"desc lowercase", "desc", "ASC", "DESC"},
		{"whitespace around value", "  desc  ", "ASC", "DESC"},
		{"sql injection attempt returns default", "ASC; DROP TABLE customers;--", "ASC", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input, tt.fallback))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty returns default", "", "name"},
		{"whitelisted field", "email", "email"},
		{"trimmed field", " created_at ", "created_at"},
		{"unknown field returns default", "password_hash", "name"},
		{"sql injection attempt returns default", "name; DROP TABLE customers", "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, CustomerSortFields, "name"))
		})
	}
}

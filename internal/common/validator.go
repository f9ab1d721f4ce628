package common

import (
	"fmt"
	"strings"
)

// Field is a single named form input, in the order the form declares it.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ValidationKind string

const (
	EmptyField   ValidationKind = "EMPTY_FIELD"
	LeadingSpace ValidationKind = "LEADING_SPACE"
)

// ValidationError reports the first field of a form that failed validation.
type ValidationError struct {
	Kind  ValidationKind
	Field string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case LeadingSpace:
		return fmt.Sprintf("%s should not start with a space.", e.Field)
	default:
		return fmt.Sprintf("%s is required and cannot be empty or contain only spaces.", e.Field)
	}
}

// IsBlank checks if a string is empty or only whitespace
func IsBlank(value string) bool {
	return len(strings.TrimSpace(value)) == 0
}

// ValidateFields walks the fields in order and stops at the first one that
// is blank or starts with a space. Fields after it are not inspected.
func ValidateFields(fields ...Field) error {
	for _, field := range fields {
		if IsBlank(field.Value) {
			return &ValidationError{Kind: EmptyField, Field: field.Name}
		}
		if strings.HasPrefix(field.Value, " ") {
			return &ValidationError{Kind: LeadingSpace, Field: field.Name}
		}
	}
	return nil
}

// ValidateRequired only applies the blank check.
func ValidateRequired(fields ...Field) error {
	for _, field := range fields {
		if IsBlank(field.Value) {
			return &ValidationError{Kind: EmptyField, Field: field.Name}
		}
	}
	return nil
}

// FieldValue returns the value of the named field, or an empty string.
func FieldValue(fields []Field, name string) string {
	for _, field := range fields {
		if field.Name == name {
			return field.Value
		}
	}
	return ""
}

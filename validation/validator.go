package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kbukum/restmapper/errors"
)

// Validator collects field errors from checks that struct tags cannot
// express, such as settings that only take effect for some operation kinds.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the collected errors sorted by field.
func (v *Validator) Errors() []FieldError {
	out := append([]FieldError(nil), v.errors...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// Validate returns an INVALID_CONFIG AppError listing every field error, or
// nil. Fields are sorted so map-backed configs report in a stable order.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}
	fields := v.Errors()
	messages := make([]string, len(fields))
	for i, e := range fields {
		messages[i] = e.Field + ": " + e.Message
	}
	appErr := errors.InvalidConfig(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": fields}
	return appErr
}

// Scope returns a view of v that reports fields under prefix, joined with
// a dot. An empty prefix reports fields as given.
func (v *Validator) Scope(prefix string) *Scope {
	return &Scope{v: v, prefix: prefix}
}

// Scope reports field errors under a common path prefix.
type Scope struct {
	v      *Validator
	prefix string
}

// Path returns the full path of field.
func (s *Scope) Path(field string) string {
	if s.prefix == "" {
		return field
	}
	return s.prefix + "." + field
}

// Check reports field with message unless ok.
func (s *Scope) Check(ok bool, field, message string) *Scope {
	if !ok {
		s.v.AddError(s.Path(field), message)
	}
	return s
}

// Required reports field when value is blank.
func (s *Scope) Required(field, value string) *Scope {
	return s.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Method reports field when value is set but is not an upper-case HTTP
// method token.
func (s *Scope) Method(field, value string) *Scope {
	return s.Check(value == "" || IsHTTPMethod(value), field, "must be an upper-case HTTP method")
}

// AppliesTo reports field when a setting is used where it has no effect.
// allowed names where it does.
func (s *Scope) AppliesTo(ok bool, field string, allowed ...string) *Scope {
	return s.Check(ok, field, "only applies to "+joinList(allowed))
}

// Each runs fn for every value with its indexed path, e.g. "query[2]".
func (s *Scope) Each(field string, values []string, fn func(s *Scope, field, value string)) *Scope {
	for i, value := range values {
		fn(s, fmt.Sprintf("%s[%d]", field, i), value)
	}
	return s
}

// joinList renders "a", "a and b" or "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return "nothing"
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

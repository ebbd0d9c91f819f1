package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// CGPA on a 4.00 or 5.00 scale, up to two decimal places
	CGPAPattern = `^[0-5](\.\d{1,2})?$`

	// Academic session, e.g. "2019-20"
	SessionPattern = `^\d{4}-\d{2}$`

	// Student identifier - digits only, institutes vary in length
	StudentIDPattern = `^\d{4,12}$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	CGPA      *regexp.Regexp
	Session   *regexp.Regexp
	StudentID *regexp.Regexp
}{
	CGPA:      regexp.MustCompile(CGPAPattern),
	Session:   regexp.MustCompile(SessionPattern),
	StudentID: regexp.MustCompile(StudentIDPattern),
}

// String validation
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

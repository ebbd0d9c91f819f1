package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCGPAPattern(t *testing.T) {
	valid := []string{"3.85", "4", "0", "5.0", "2.5"}
	for _, v := range valid {
		assert.True(t, CompiledPatterns.CGPA.MatchString(v), v)
	}

	invalid := []string{"9.99", "3.855", "-1", "abc", "3,85"}
	for _, v := range invalid {
		assert.False(t, CompiledPatterns.CGPA.MatchString(v), v)
	}
}

func TestSessionPattern(t *testing.T) {
	assert.True(t, CompiledPatterns.Session.MatchString("2019-20"))
	assert.False(t, CompiledPatterns.Session.MatchString("2019"))
	assert.False(t, CompiledPatterns.Session.MatchString("19-20"))
}

func TestStringValidation(t *testing.T) {
	assert.True(t, NewStringValidation("Ayesha Rahman").WithMinLength(NameMinLength).WithMaxLength(NameMaxLength).Validate())
	assert.False(t, NewStringValidation("").Validate())
	assert.False(t, NewStringValidation("A").WithMinLength(2).Validate())
	assert.True(t, NewStringValidation("").WithRequired(false).WithPattern(CompiledPatterns.CGPA).Validate())
	assert.False(t, NewStringValidation("bad").WithRequired(false).WithPattern(CompiledPatterns.CGPA).Validate())
}

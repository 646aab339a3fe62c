package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants(t *testing.T) {
	for _, c := range []string{FieldFile, FieldDocumentType, FieldField, FieldCount, FieldInputFile, FieldOutputFile} {
		assert.NotEmpty(t, c)
	}
}

func TestConstants_Unique(t *testing.T) {
	all := []string{
		FieldFile, FieldDocumentType, FieldField, FieldPattern, FieldPage, FieldPages,
		FieldOperation, FieldStatus, FieldError, FieldDuration, FieldCount, FieldFormat,
		FieldInputFile, FieldOutputFile, FieldRequestID, FieldWorkers,
	}
	seen := make(map[string]bool, len(all))
	for _, c := range all {
		assert.False(t, seen[c], "duplicate field name %q", c)
		seen[c] = true
	}
}

package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectTaxID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"letter O in serial slot", "27AAPFU09O9F1ZV", "27AAPFU0909F1ZV"},
		{"valid id unchanged", "29AABCG1234K1Z5", "29AABCG1234K1Z5"},
		{"state code and fixed Z slot", "Z7AAPFU0909F12V", "27AAPFU0909F1ZV"},
		{"digit in PAN letter slot", "27AAPF50909F1ZV", "27AAPFS0909F1ZV"},
		{"lowercase input", "27aapfu0909f1zv", "27AAPFU0909F1ZV"},
		{"wrong length only uppercased", "27aapfu", "27AAPFU"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CorrectTaxID(tt.input))
		})
	}
}

func TestCorrectTaxID_PreservesValidIDs(t *testing.T) {
	for _, id := range []string{"27AAPFU0909F1ZV", "29AABCG1234K1Z5", "07AAACR5055K1Z0", "33AAACI1681G1ZW"} {
		assert.True(t, ValidTaxID(id), id)
		assert.Equal(t, id, CorrectTaxID(id))
	}
}

func TestValidTaxID(t *testing.T) {
	assert.True(t, ValidTaxID("27AAPFU0909F1ZV"))
	assert.False(t, ValidTaxID("27AAPFU09O9F1ZV"))
	assert.False(t, ValidTaxID("27AAPFU0909F1XV"))
	assert.False(t, ValidTaxID("27aapfu0909f1zv"))
	assert.False(t, ValidTaxID(""))
}

func TestExtractTaxID(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected TaxID
		found    bool
	}{
		{"gstin label", "GSTIN: 27AAPFU0909F1ZV", TaxID{"27AAPFU0909F1ZV", true}, true},
		{"gst no label with OCR noise", "GST No. 27AAPFU09O9F1ZV", TaxID{"27AAPFU0909F1ZV", true}, true},
		{"gstin no label", "GSTIN NO: 29AABCG1234K1Z5", TaxID{"29AABCG1234K1Z5", true}, true},
		{"unlabelled id", "Regd 29AABCG1234K1Z5 Pune", TaxID{"29AABCG1234K1Z5", true}, true},
		{"lowercase label and value", "gstin: 27aapfu0909f1zv", TaxID{"27AAPFU0909F1ZV", true}, true},
		{"unverifiable labelled value", "GSTIN: 27AAPFU0909F1XV", TaxID{"27AAPFU0909F1XV", false}, true},
		{"valid later candidate preferred", "GST: 27AAPFU0909F1XV\nGSTIN: 29AABCG1234K1Z5", TaxID{"29AABCG1234K1Z5", true}, true},
		{"label glued to value", "GSTIN27AAPFU0939F1ZV", TaxID{"27AAPFU0939F1ZV", true}, true},
		{"value glued to next word", "GSTIN: 27AAPFU0939F1ZVDate 12/05/2024", TaxID{"27AAPFU0939F1ZV", true}, true},
		{"unlabelled id glued on both sides", "Regd29AABCG1234K1Z5Pune", TaxID{"29AABCG1234K1Z5", true}, true},
		{"no candidate", "no tax id here", TaxID{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractTaxID(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestLocateTaxID_Offset(t *testing.T) {
	text := "GST INVOICE\nACME ENTERPRISES\nGSTIN: 27AAPFU0909F1ZV"
	id, at, ok := locateTaxID(text)

	assert.True(t, ok)
	assert.Equal(t, "27AAPFU0909F1ZV", id.Value)
	assert.Equal(t, "GSTIN: 27AAPFU0909F1ZV", lineAt(text, at))

	_, at, ok = locateTaxID("no tax id here")
	assert.False(t, ok)
	assert.Equal(t, "", lineAt("no tax id here", at))
}

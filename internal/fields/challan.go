package fields

import (
	"regexp"

	"fjacquet/docfields/internal/models"
)

func partyNumber(s string) (string, bool) {
	return s, hasDigit(s)
}

var (
	purposeRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)\bPURPOSE\b[:\-\t ]*([^\n]+)`)},
	}

	partyDCNumberRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)\bPARTY\s*DC\s*NO\b` + docNumberValue), Validate: partyNumber},
		{Pattern: regexp.MustCompile(`(?i)\bPARTY\s*DC\b` + docNumberValue), Validate: partyNumber},
	}

	partyDCDateRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)\bPARTY\s*DC\s*DATE\b` + dateValue), Validate: ValidDate},
	}
)

func extractChallanFields(text string) *models.ChallanFields {
	var f models.ChallanFields
	f.Purpose, _ = firstValid(purposeRules, text)
	f.PartyDCNumber, _ = firstValid(partyDCNumberRules, text)
	f.PartyDCDate, _ = firstValid(partyDCDateRules, text)
	return &f
}

package fields

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// The separator run is lazy so a minus sign directly before the digits is
// captured and rejected by ValidateAmount instead of being skipped.
const amountValue = `\b[.:\-\s]*?(?:₹|\$|€|£|RS\.?|INR)?\s*(-?[\d,]+(?:\.\d{1,2})?)`

var (
	maxAmount = decimal.NewFromInt(1_000_000_000)

	subTotalPrefix = regexp.MustCompile(`(?i)\bSUB[\s\-]*$`)

	amountRules = []Rule{
		{Pattern: regexp.MustCompile(`(?i)\bGRAND\s*TOTAL` + amountValue), Validate: ValidateAmount},
		{Pattern: regexp.MustCompile(`(?i)\bTOTAL` + amountValue), Validate: ValidateAmount, Exclude: subTotalPrefix},
		{Pattern: regexp.MustCompile(`(?i)\bTOTAL\s*VALUE` + amountValue), Validate: ValidateAmount},
	}
)

// ValidateAmount strips thousands separators and accepts amounts strictly
// between zero and one billion. The stripped string is returned unchanged
// otherwise, so "12,34,567.00" becomes "1234567.00".
func ValidateAmount(s string) (string, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return "", false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", false
	}
	if !d.IsPositive() || !d.LessThan(maxAmount) {
		return "", false
	}
	return s, true
}

// ExtractTotal returns the document total from the first grand-total, total
// or total-value label carrying a valid amount.
func ExtractTotal(text string) (string, bool) {
	return firstValid(amountRules, text)
}

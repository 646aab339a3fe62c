package fields

import (
	"regexp"
	"strings"
)

// TaxID is a GSTIN candidate after OCR correction. Verified is false when
// the value is a best-effort label match that does not satisfy the grammar.
type TaxID struct {
	Value    string
	Verified bool
}

var (
	taxIDGrammar = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][A-Z0-9]Z[A-Z0-9]$`)

	taxIDLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bGSTIN(?:\s*NO)?[.:\-\s]*([0-9A-Z]{15})`),
		regexp.MustCompile(`(?i)\bGST\s*NO[.:\-\s]*([0-9A-Z]{15})`),
		regexp.MustCompile(`(?i)\bGST\s*NUMBER[.:\-\s]*([0-9A-Z]{15})`),
		regexp.MustCompile(`(?i)\bGST\s*REG(?:N|ISTRATION)?\.?\s*NO[.:\-\s]*([0-9A-Z]{15})`),
		regexp.MustCompile(`(?i)\bGST[.:\-\s]*([0-9A-Z]{15})`),
	}

	// OCR often glues the ID to neighbouring words, so runs are scanned
	// with a sliding window rather than matched whole.
	taxIDRun = regexp.MustCompile(`(?i)[0-9A-Z]{15,}`)
)

var (
	toDigit = map[rune]rune{'O': '0', 'Q': '0', 'D': '0', 'I': '1', 'L': '1', 'Z': '2', 'S': '5', 'G': '6', 'B': '8'}
	toAlpha = map[rune]rune{'0': 'O', '1': 'I', '2': 'Z', '5': 'S', '6': 'G', '8': 'B'}
)

// ValidTaxID reports whether s satisfies the GSTIN grammar.
func ValidTaxID(s string) bool {
	return taxIDGrammar.MatchString(s)
}

// CorrectTaxID uppercases a 15-character candidate and repairs common OCR
// confusions by position: letters in the state-code and serial slots become
// digits, digits in the PAN letter slots become letters, and a 2 in the fixed
// Z slot becomes Z. Other lengths are only uppercased.
func CorrectTaxID(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 15 {
		return s
	}
	out := []rune(s)
	for i, r := range out {
		switch {
		case i <= 1 || (i >= 7 && i <= 10):
			if d, ok := toDigit[r]; ok {
				out[i] = d
			}
		case (i >= 2 && i <= 6) || i == 11:
			if a, ok := toAlpha[r]; ok {
				out[i] = a
			}
		case i == 13:
			if r == '2' {
				out[i] = 'Z'
			}
		}
	}
	return string(out)
}

// ExtractTaxID finds the supplier's GSTIN. Labelled candidates are tried
// before an unanchored scan; the first corrected candidate that satisfies
// the grammar wins. Failing that, the first labelled candidate is returned
// unverified.
func ExtractTaxID(text string) (TaxID, bool) {
	id, _, ok := locateTaxID(text)
	return id, ok
}

// locateTaxID is ExtractTaxID that also returns the byte offset of the match,
// the label start for labelled candidates.
func locateTaxID(text string) (TaxID, int, bool) {
	var fallback string
	fallbackAt := -1
	for _, re := range taxIDLabels {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			c := CorrectTaxID(text[m[2]:m[3]])
			if ValidTaxID(c) {
				return TaxID{Value: c, Verified: true}, m[0], true
			}
			if fallback == "" {
				fallback, fallbackAt = c, m[0]
			}
		}
	}
	for _, loc := range taxIDRun.FindAllStringIndex(text, -1) {
		for i := loc[0]; i+15 <= loc[1]; i++ {
			if c := CorrectTaxID(text[i : i+15]); ValidTaxID(c) {
				return TaxID{Value: c, Verified: true}, i, true
			}
		}
	}
	if fallback != "" {
		return TaxID{Value: fallback}, fallbackAt, true
	}
	return TaxID{}, -1, false
}

// lineAt returns the trimmed line of text containing byte offset off.
func lineAt(text string, off int) string {
	if off < 0 || off > len(text) {
		return ""
	}
	start := strings.LastIndexByte(text[:off], '\n') + 1
	end := len(text)
	if i := strings.IndexByte(text[off:], '\n'); i >= 0 {
		end = off + i
	}
	return strings.TrimSpace(text[start:end])
}

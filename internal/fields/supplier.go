package fields

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	strayLetter   = regexp.MustCompile(`\s[A-Za-z]$`)
)

// extractSupplier looks above anchor, the line holding the tax ID, first,
// then falls back to a company-keyword scan of the document header.
func (c *Cascade) extractSupplier(lines []string, anchor string) (string, bool) {
	if name, ok := c.supplierAboveAnchor(lines, anchor); ok {
		return name, true
	}
	return c.supplierFromHeader(lines)
}

func (c *Cascade) supplierAboveAnchor(lines []string, anchorLine string) (string, bool) {
	if anchorLine == "" {
		return "", false
	}
	anchor := slices.Index(lines, anchorLine)
	if anchor <= 0 {
		return "", false
	}
	for i := anchor - 1; i >= 0 && i >= anchor-c.limits.SupplierLinesAbove; i-- {
		l := lines[i]
		if c.supplierBoilerplate.MatchString(l) {
			continue
		}
		if !c.letterRun.MatchString(l) || len(l) <= c.limits.SupplierMinLength {
			continue
		}
		if name := CleanSupplierName(l); name != "" {
			return name, true
		}
	}
	return "", false
}

func (c *Cascade) supplierFromHeader(lines []string) (string, bool) {
	n := min(len(lines), c.limits.SupplierHeaderLines)
	for _, l := range lines[:n] {
		if !c.companyKeyword.MatchString(l) || c.shippingBoilerplate.MatchString(l) {
			continue
		}
		if len(l) <= c.limits.SupplierMinLength {
			continue
		}
		if name := CleanSupplierName(l); name != "" {
			return name, true
		}
	}
	return "", false
}

// CleanSupplierName strips OCR noise around a company name: leading
// non-letters, trailing symbols, a lone trailing letter, and repeated whitespace.
func CleanSupplierName(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
	s = strings.TrimRightFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != ')'
	})
	s = strayLetter.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
	return s
}

package fields

import (
	"regexp"
	"strings"
)

var (
	customerPrefix = regexp.MustCompile(`(?i)^\s*(?:M/s\.?|TO\s*:)\s*`)

	customerLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bBILL\s*TO\b[:\-\s]*\n?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)\bCUSTOMER\b[:\-\s]*\n?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)\bTO\b[:\-\s]*\n?\s*([^\n]+)`),
	}

	dispatchLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:DISPATCH\s*MODE|MODE\s*OF\s*DISPATCH)\b[:\-\t ]*([^\n]+)`),
		regexp.MustCompile(`(?i)\bTHROUGH\b[:\-\t ]*([^\n]+)`),
		regexp.MustCompile(`(?i)\bBY\b[:\-\t ]*([^\n,]+)`),
	}
)

func (c *Cascade) customerRules() []Rule {
	validate := func(s string) (string, bool) {
		s = strings.TrimSpace(customerPrefix.ReplaceAllString(s, ""))
		return s, len(s) > c.limits.CustomerMinLength
	}
	rules := make([]Rule, len(customerLabels))
	for i, re := range customerLabels {
		rules[i] = Rule{Pattern: re, Validate: validate}
	}
	return rules
}

func (c *Cascade) dispatchRules() []Rule {
	rules := make([]Rule, len(dispatchLabels))
	for i, re := range dispatchLabels {
		rules[i] = Rule{Pattern: re, Validate: minLength(c.limits.DispatchMinLength)}
	}
	return rules
}

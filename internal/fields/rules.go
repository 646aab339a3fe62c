package fields

import (
	"regexp"
	"strings"
)

// Rule is one labelled pattern in a field's cascade. Pattern must capture the
// candidate value in group 1.
type Rule struct {
	Pattern *regexp.Regexp
	// Validate normalizes and accepts a trimmed candidate. Nil accepts any non-empty value.
	Validate func(string) (string, bool)
	// Exclude rejects a match when the text before it on the same line matches.
	Exclude *regexp.Regexp
}

// firstValid tries every match of every rule in order and returns the first
// candidate that passes validation.
func firstValid(rules []Rule, text string) (string, bool) {
	for _, r := range rules {
		for _, loc := range r.Pattern.FindAllStringSubmatchIndex(text, -1) {
			if len(loc) < 4 || loc[2] < 0 {
				continue
			}
			if r.Exclude != nil && r.Exclude.MatchString(linePrefix(text, loc[0])) {
				continue
			}
			v := strings.TrimSpace(text[loc[2]:loc[3]])
			if r.Validate != nil {
				var ok bool
				if v, ok = r.Validate(v); !ok {
					continue
				}
			} else if v == "" {
				continue
			}
			return v, true
		}
	}
	return "", false
}

// linePrefix returns the part of the line containing offset that precedes it.
func linePrefix(text string, offset int) string {
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	return text[start:offset]
}

// prepareLines trims every line and drops those too short to carry a value.
func prepareLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if len(l) > 2 {
			lines = append(lines, l)
		}
	}
	return lines
}

// wordPattern compiles a case-insensitive alternation of words. Words that end
// in a letter or digit only match as whole words.
func wordPattern(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return regexp.MustCompile(`[^\s\S]`)
	}
	alts := make([]string, len(words))
	for i, w := range words {
		p := `\b` + regexp.QuoteMeta(w)
		if last := w[len(w)-1]; isWordByte(last) {
			p += `\b`
		}
		alts[i] = p
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func hasDigit(s string) bool {
	return strings.ContainsAny(s, "0123456789")
}

func containsAnyFold(s string, words []string) bool {
	upper := strings.ToUpper(s)
	for _, w := range words {
		if strings.Contains(upper, strings.ToUpper(w)) {
			return true
		}
	}
	return false
}

func minLength(n int) func(string) (string, bool) {
	return func(s string) (string, bool) {
		return s, len(s) > n
	}
}

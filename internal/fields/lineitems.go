package fields

import (
	"strings"
	"unicode"
)

// extractLineItems returns, in source order, every line that carries a
// quantity with a unit and is not a summary row.
func (c *Cascade) extractLineItems(text string) []string {
	var items []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if len(line) <= 10 || !c.quantity.MatchString(line) {
			continue
		}
		if !strings.ContainsFunc(line, unicode.IsLetter) {
			continue
		}
		if containsAnyFold(line, c.vocab.AggregateKeywords) {
			continue
		}
		items = append(items, line)
	}
	return items
}

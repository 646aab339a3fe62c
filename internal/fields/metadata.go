package fields

import (
	"regexp"
	"strings"

	"fjacquet/docfields/internal/models"
)

var (
	phonePattern = regexp.MustCompile(`[+(]?[1-9][0-9 .\-()]{8,}[0-9]`)
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

func (c *Cascade) extractMetadata(text string, lines []string) models.Metadata {
	var meta models.Metadata
	for _, l := range lines {
		if containsAnyFold(l, c.vocab.AddressKeywords) {
			meta.Addresses = append(meta.Addresses, l)
		}
	}
	for _, p := range phonePattern.FindAllString(text, c.limits.MaxContacts) {
		meta.Contacts.Phones = append(meta.Contacts.Phones, strings.TrimSpace(p))
	}
	meta.Contacts.Emails = emailPattern.FindAllString(text, c.limits.MaxContacts)
	return meta
}

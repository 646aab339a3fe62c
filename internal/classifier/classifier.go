// Package classifier assigns a document type from keyword evidence in the
// extracted text.
package classifier

import (
	"strings"

	"fjacquet/docfields/internal/models"
)

// Rule maps a group of keywords to the type assigned when any of them occurs.
type Rule struct {
	Type     models.DocumentType
	Keywords []string
}

// DefaultRules returns the ordered keyword groups. Delivery challans come
// first because their boilerplate often mentions invoices.
func DefaultRules() []Rule {
	return []Rule{
		{Type: models.DeliveryChallan, Keywords: []string{"delivery challan", "dc no", "challan no"}},
		{Type: models.TaxInvoice, Keywords: []string{"tax invoice", "gst invoice"}},
		{Type: models.Invoice, Keywords: []string{"invoice", "inv no", "bill no"}},
	}
}

// Classifier matches text against ordered rules; the first match wins.
type Classifier struct {
	rules []Rule
}

// New creates a Classifier. Keywords are copied and lowercased, so later
// changes to rules have no effect. Nil rules use DefaultRules.
func New(rules []Rule) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	own := make([]Rule, len(rules))
	for i, r := range rules {
		kw := make([]string, len(r.Keywords))
		for j, k := range r.Keywords {
			kw[j] = strings.ToLower(k)
		}
		own[i] = Rule{Type: r.Type, Keywords: kw}
	}
	return &Classifier{rules: own}
}

// Classify returns the type of the first rule with a keyword in text, or models.Unknown.
func (c *Classifier) Classify(text string) models.DocumentType {
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		for _, k := range r.Keywords {
			if strings.Contains(lower, k) {
				return r.Type
			}
		}
	}
	return models.Unknown
}

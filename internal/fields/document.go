package fields

import (
	"regexp"

	"fjacquet/docfields/internal/models"
)

const (
	docNumberValue = `[.:\-\s]*([A-Z0-9/\-._]+)`
	dateValue      = `[.:\-\s]*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`
)

var (
	dateShape = regexp.MustCompile(`^\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}$`)

	// A label directly preceded by PARTY belongs to the party's own challan.
	partyPrefix     = regexp.MustCompile(`(?i)\bPARTY\s*$`)
	partyDatePrefix = regexp.MustCompile(`(?i)\bPARTY\s*(?:DC\s*|CHALLAN\s*)?$`)

	challanNumberLabels = []string{`\bDC\s*NO`, `\bDELIVERY\s*CHALLAN\s*NO`, `\bCHALLAN\s*NO`}
	invoiceNumberLabels = []string{`\bINVOICE\s*NO`, `\bINV\s*NO`, `\bBILL\s*NO`}

	challanDateLabels = []string{`\bDC\s*DATE`, `\bCHALLAN\s*DATE`}
	invoiceDateLabels = []string{`\bINVOICE\s*DATE`, `\bBILL\s*DATE`}
	genericDateLabel  = `\bDATE`
)

func validDocNumber(s string) (string, bool) {
	return s, len(s) >= 3 && len(s) <= 50 && hasDigit(s)
}

// ValidDate reports whether s has the day/month/year shape used on Indian documents.
func ValidDate(s string) (string, bool) {
	return s, dateShape.MatchString(s)
}

func labelRules(labels []string, value string, validate func(string) (string, bool), exclude *regexp.Regexp) []Rule {
	rules := make([]Rule, len(labels))
	for i, l := range labels {
		rules[i] = Rule{
			Pattern:  regexp.MustCompile(`(?i)` + l + value),
			Validate: validate,
			Exclude:  exclude,
		}
	}
	return rules
}

func numberRules(t models.DocumentType) []Rule {
	switch t {
	case models.DeliveryChallan:
		return labelRules(challanNumberLabels, docNumberValue, validDocNumber, partyPrefix)
	case models.TaxInvoice, models.Invoice:
		return labelRules(invoiceNumberLabels, docNumberValue, validDocNumber, partyPrefix)
	default:
		labels := append(append([]string{}, challanNumberLabels...), invoiceNumberLabels...)
		return labelRules(labels, docNumberValue, validDocNumber, partyPrefix)
	}
}

func dateRules(t models.DocumentType) []Rule {
	var labels []string
	switch t {
	case models.DeliveryChallan:
		labels = append(labels, challanDateLabels...)
	case models.TaxInvoice, models.Invoice:
		labels = append(labels, invoiceDateLabels...)
	default:
		labels = append(append(labels, challanDateLabels...), invoiceDateLabels...)
	}
	labels = append(labels, genericDateLabel)
	return labelRules(labels, dateValue, ValidDate, partyDatePrefix)
}

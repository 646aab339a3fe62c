package fields

// Vocabulary holds the keyword lists the cascade matches against. A
// Cascade copies it at construction.
type Vocabulary struct {
	// SupplierBoilerplate disqualifies a line above the tax-ID anchor from being the supplier.
	SupplierBoilerplate []string
	// ShippingBoilerplate disqualifies a header line carrying a company keyword.
	ShippingBoilerplate []string
	CompanyKeywords     []string
	AddressKeywords     []string
	// AggregateKeywords mark summary rows that are never line items.
	AggregateKeywords []string
	QuantityUnits     []string
}

// DefaultVocabulary returns the keyword lists for Indian GST invoices and delivery challans.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		SupplierBoilerplate: []string{"FORM", "DELIVERY", "CHALLAN", "RETURNABLE", "PARTY", "DC", "DATE", "TO", "PURPOSE", "NO", "REV"},
		ShippingBoilerplate: []string{"TO", "DELIVERY", "CHALLAN", "RETURNABLE"},
		CompanyKeywords: []string{
			"LIMITED", "LTD", "PVT", "PRIVATE", "CORP", "CORPORATION", "COMPANY", "CO.",
			"ELECTRONICS", "SOLUTIONS", "ENTERPRISES", "INDUSTRIES", "GROUP", "WORLDWIDE",
			"GLOBAL", "INTERNATIONAL", "PLANT",
		},
		AddressKeywords:   []string{"ROAD", "STREET", "AVENUE", "LANE", "POST", "PIN", "CITY", "STATE"},
		AggregateKeywords: []string{"TOTAL", "SUBTOTAL", "GRAND"},
		QuantityUnits:     []string{"NOS", "PCS", "UNITS", "QTY"},
	}
}

func (v Vocabulary) clone() Vocabulary {
	cp := func(s []string) []string { return append([]string(nil), s...) }
	return Vocabulary{
		SupplierBoilerplate: cp(v.SupplierBoilerplate),
		ShippingBoilerplate: cp(v.ShippingBoilerplate),
		CompanyKeywords:     cp(v.CompanyKeywords),
		AddressKeywords:     cp(v.AddressKeywords),
		AggregateKeywords:   cp(v.AggregateKeywords),
		QuantityUnits:       cp(v.QuantityUnits),
	}
}

// Thresholds are the numeric limits used by the individual extractors.
type Thresholds struct {
	// SupplierMinLength is the length a supplier line must exceed.
	SupplierMinLength int
	// SupplierLetterRun is the minimum run of consecutive letters in a supplier line.
	SupplierLetterRun   int
	SupplierLinesAbove  int
	SupplierHeaderLines int
	CustomerMinLength   int
	DispatchMinLength   int
	MaxContacts         int
}

// DefaultThresholds returns the standard limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SupplierMinLength:   5,
		SupplierLetterRun:   3,
		SupplierLinesAbove:  4,
		SupplierHeaderLines: 10,
		CustomerMinLength:   3,
		DispatchMinLength:   2,
		MaxContacts:         3,
	}
}

// withDefaults fills unset (non-positive) limits from DefaultThresholds.
func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	pick := func(v, def int) int {
		if v <= 0 {
			return def
		}
		return v
	}
	return Thresholds{
		SupplierMinLength:   pick(t.SupplierMinLength, d.SupplierMinLength),
		SupplierLetterRun:   pick(t.SupplierLetterRun, d.SupplierLetterRun),
		SupplierLinesAbove:  pick(t.SupplierLinesAbove, d.SupplierLinesAbove),
		SupplierHeaderLines: pick(t.SupplierHeaderLines, d.SupplierHeaderLines),
		CustomerMinLength:   pick(t.CustomerMinLength, d.CustomerMinLength),
		DispatchMinLength:   pick(t.DispatchMinLength, d.DispatchMinLength),
		MaxContacts:         pick(t.MaxContacts, d.MaxContacts),
	}
}

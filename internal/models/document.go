package models

import "strings"

// Sentinel is the placeholder used for any field that could not be extracted or validated.
const Sentinel = "Not Available"

// DocumentType is the classified category of a document. It is chosen once
// per document and governs which patterns and fields apply.
type DocumentType int

const (
	Unknown DocumentType = iota
	DeliveryChallan
	TaxInvoice
	Invoice
)

// String returns the display name used in extracted records.
func (t DocumentType) String() string {
	switch t {
	case DeliveryChallan:
		return "Delivery Challan"
	case TaxInvoice:
		return "Tax Invoice"
	case Invoice:
		return "Invoice"
	default:
		return "Unknown Document"
	}
}

// IsChallan reports whether challan-only fields apply.
func (t DocumentType) IsChallan() bool {
	return t == DeliveryChallan
}

// MarshalText implements encoding.TextMarshaler.
func (t DocumentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseRequestedType maps a caller-supplied key such as "delivery_challan",
// "dc", "tax_invoice" or "invoice" to a DocumentType. Unrecognized keys map to Unknown.
func ParseRequestedType(s string) DocumentType {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "delivery_challan", "dc", "challan":
		return DeliveryChallan
	case "tax_invoice", "gst_invoice":
		return TaxInvoice
	case "invoice", "bill":
		return Invoice
	default:
		return Unknown
	}
}

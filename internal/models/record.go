package models

// Record keys of the caller-stable ExtractedRecord shape.
const (
	KeyDocumentType   = "document_type"
	KeySupplierName   = "supplier_name"
	KeyGSTNo          = "gst_no"
	KeyGSTVerified    = "gst_verified"
	KeyDocumentNumber = "document_number"
	KeyDocumentDate   = "document_date"
	KeyTotalAmount    = "total_amount"
	KeyCustomerName   = "customer_name"
	KeyDispatchMode   = "dispatch_mode"
	KeyLineItems      = "line_items"
	KeyMetadata       = "metadata"
	KeyAddresses      = "addresses"
	KeyContacts       = "contacts"
	KeyPhones         = "phones"
	KeyEmails         = "emails"
	KeyPurpose        = "purpose"
	KeyPartyDCNumber  = "party_dc_number"
	KeyPartyDCDate    = "party_dc_date"
)

// ExtractedRecord is the normalized, caller-stable form of a Record: every
// declared key is present, strings are either a value or Sentinel, and lists
// are never nil.
type ExtractedRecord map[string]any

// Contacts groups phone numbers and email addresses found anywhere in a document.
type Contacts struct {
	Phones []string
	Emails []string
}

// Metadata holds the free-form lines and contacts found in a document.
type Metadata struct {
	Addresses []string
	Contacts  Contacts
}

// ChallanFields is the variant payload present only for delivery challans.
type ChallanFields struct {
	Purpose       string
	PartyDCNumber string
	PartyDCDate   string
}

// Record is the typed result of the field extraction cascade. Empty strings
// mean the field was not found.
type Record struct {
	DocumentType   DocumentType
	SupplierName   string
	GSTNo          string
	// GSTVerified is false when GSTNo is an OCR-corrected value that does not
	// satisfy the GSTIN grammar.
	GSTVerified    bool
	DocumentNumber string
	DocumentDate   string
	TotalAmount    string
	CustomerName   string
	DispatchMode   string
	LineItems      []string
	Metadata       Metadata
	Challan        *ChallanFields
}

// Fields returns the record as a raw (not yet normalized) map. Absent values
// stay as empty strings or nil slices.
func (r Record) Fields() map[string]any {
	m := map[string]any{
		KeyDocumentType:   r.DocumentType.String(),
		KeySupplierName:   r.SupplierName,
		KeyGSTNo:          r.GSTNo,
		KeyGSTVerified:    r.GSTVerified,
		KeyDocumentNumber: r.DocumentNumber,
		KeyDocumentDate:   r.DocumentDate,
		KeyTotalAmount:    r.TotalAmount,
		KeyCustomerName:   r.CustomerName,
		KeyDispatchMode:   r.DispatchMode,
		KeyLineItems:      r.LineItems,
		KeyMetadata: map[string]any{
			KeyAddresses: r.Metadata.Addresses,
			KeyContacts: map[string]any{
				KeyPhones: r.Metadata.Contacts.Phones,
				KeyEmails: r.Metadata.Contacts.Emails,
			},
		},
	}
	if r.Challan != nil {
		m[KeyPurpose] = r.Challan.Purpose
		m[KeyPartyDCNumber] = r.Challan.PartyDCNumber
		m[KeyPartyDCDate] = r.Challan.PartyDCDate
	}
	return m
}

// EmptyRecord returns the all-sentinel record for t. Callers substitute it
// when extraction reports total failure.
func EmptyRecord(t DocumentType) ExtractedRecord {
	rec := ExtractedRecord{
		KeyDocumentType:   t.String(),
		KeySupplierName:   Sentinel,
		KeyGSTNo:          Sentinel,
		KeyGSTVerified:    false,
		KeyDocumentNumber: Sentinel,
		KeyDocumentDate:   Sentinel,
		KeyTotalAmount:    Sentinel,
		KeyCustomerName:   Sentinel,
		KeyDispatchMode:   Sentinel,
		KeyLineItems:      []string{},
		KeyMetadata: map[string]any{
			KeyAddresses: []string{},
			KeyContacts: map[string]any{
				KeyPhones: []string{},
				KeyEmails: []string{},
			},
		},
	}
	if t.IsChallan() {
		rec[KeyPurpose] = Sentinel
		rec[KeyPartyDCNumber] = Sentinel
		rec[KeyPartyDCDate] = Sentinel
	}
	return rec
}

// String returns the string value stored under key, or "" if absent or not a string.
func (r ExtractedRecord) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bool returns the boolean stored under key, or false if absent or not a bool.
func (r ExtractedRecord) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Strings returns the list stored under key, or nil.
func (r ExtractedRecord) Strings(key string) []string {
	s, _ := r[key].([]string)
	return s
}

// Metadata returns the nested metadata map, or nil.
func (r ExtractedRecord) Metadata() map[string]any {
	m, _ := r[KeyMetadata].(map[string]any)
	return m
}

// Addresses returns metadata.addresses.
func (r ExtractedRecord) Addresses() []string {
	s, _ := r.Metadata()[KeyAddresses].([]string)
	return s
}

// Phones returns metadata.contacts.phones.
func (r ExtractedRecord) Phones() []string {
	c, _ := r.Metadata()[KeyContacts].(map[string]any)
	s, _ := c[KeyPhones].([]string)
	return s
}

// Emails returns metadata.contacts.emails.
func (r ExtractedRecord) Emails() []string {
	c, _ := r.Metadata()[KeyContacts].(map[string]any)
	s, _ := c[KeyEmails].([]string)
	return s
}

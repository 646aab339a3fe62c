// Package fields extracts structured invoice and delivery-challan fields
// from raw document text. Each field runs an ordered cascade of labelled
// patterns; the first candidate that passes the field's validation wins and
// a miss leaves the field empty.
package fields

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/docfields/internal/logging"
	"fjacquet/docfields/internal/models"
)

// Cascade runs every field extractor over a document's text. It holds only
// immutable configuration and is safe for concurrent use.
type Cascade struct {
	vocab  Vocabulary
	limits Thresholds
	logger logging.Logger

	supplierBoilerplate *regexp.Regexp
	shippingBoilerplate *regexp.Regexp
	companyKeyword      *regexp.Regexp
	letterRun           *regexp.Regexp
	quantity            *regexp.Regexp

	numbers  map[models.DocumentType][]Rule
	dates    map[models.DocumentType][]Rule
	customer []Rule
	dispatch []Rule
}

// New creates a Cascade from a vocabulary and thresholds. Unset thresholds
// take their defaults.
func New(vocab Vocabulary, limits Thresholds, logger logging.Logger) *Cascade {
	vocab = vocab.clone()
	limits = limits.withDefaults()

	units := make([]string, len(vocab.QuantityUnits))
	for i, u := range vocab.QuantityUnits {
		units[i] = regexp.QuoteMeta(u)
	}

	c := &Cascade{
		vocab:               vocab,
		limits:              limits,
		logger:              logging.OrDefault(logger),
		supplierBoilerplate: wordPattern(vocab.SupplierBoilerplate),
		shippingBoilerplate: wordPattern(vocab.ShippingBoilerplate),
		companyKeyword:      wordPattern(vocab.CompanyKeywords),
		letterRun:           regexp.MustCompile(fmt.Sprintf(`[A-Za-z]{%d,}`, limits.SupplierLetterRun)),
		quantity:            regexp.MustCompile(`(?i)\d+[,.]?\d*\s*(?:` + strings.Join(units, "|") + `)\b`),
		numbers:             make(map[models.DocumentType][]Rule),
		dates:               make(map[models.DocumentType][]Rule),
	}
	for _, t := range []models.DocumentType{models.Unknown, models.DeliveryChallan, models.TaxInvoice, models.Invoice} {
		c.numbers[t] = numberRules(t)
		c.dates[t] = dateRules(t)
	}
	c.customer = c.customerRules()
	c.dispatch = c.dispatchRules()
	return c
}

// NewDefault creates a Cascade with DefaultVocabulary and DefaultThresholds.
func NewDefault(logger logging.Logger) *Cascade {
	return New(DefaultVocabulary(), DefaultThresholds(), logger)
}

// Extract runs all extractors for a document already classified as docType.
// Fields that are not found are left empty.
func (c *Cascade) Extract(text string, docType models.DocumentType) models.Record {
	lines := prepareLines(text)

	rec := models.Record{DocumentType: docType}
	id, at, found := locateTaxID(text)
	rec.SupplierName, _ = c.extractSupplier(lines, lineAt(text, at))
	if found {
		rec.GSTNo = id.Value
		rec.GSTVerified = id.Verified
		if !id.Verified {
			c.logger.Warn("Tax ID does not satisfy GSTIN grammar, keeping best-effort value",
				logging.Field{Key: logging.FieldField, Value: models.KeyGSTNo})
		}
	}
	rec.DocumentNumber, _ = firstValid(c.numbers[docType], text)
	rec.DocumentDate, _ = firstValid(c.dates[docType], text)
	rec.TotalAmount, _ = ExtractTotal(text)
	rec.CustomerName, _ = firstValid(c.customer, text)
	rec.DispatchMode, _ = firstValid(c.dispatch, text)
	rec.LineItems = c.extractLineItems(text)
	rec.Metadata = c.extractMetadata(text, lines)

	if docType.IsChallan() {
		rec.Challan = extractChallanFields(text)
	}

	c.logger.Debug("Field cascade finished",
		logging.Field{Key: logging.FieldDocumentType, Value: docType.String()},
		logging.Field{Key: "line_items", Value: len(rec.LineItems)})
	return rec
}

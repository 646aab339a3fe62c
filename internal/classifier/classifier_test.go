package classifier

import (
	"testing"

	"fjacquet/docfields/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.DocumentType
	}{
		{"delivery challan", "RETURNABLE DELIVERY CHALLAN\nDC No: 123", models.DeliveryChallan},
		{"challan number only", "Challan No. 55", models.DeliveryChallan},
		{"challan wins over tax invoice", "Delivery Challan\nNot a Tax Invoice", models.DeliveryChallan},
		{"tax invoice", "TAX INVOICE\nInvoice No: 9", models.TaxInvoice},
		{"gst invoice", "gst invoice", models.TaxInvoice},
		{"plain invoice", "Commercial Invoice", models.Invoice},
		{"bill number", "Bill No: 44", models.Invoice},
		{"unknown", "Quotation for services", models.Unknown},
		{"empty", "", models.Unknown},
	}

	c := New(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.text))
		})
	}
}

func TestNew_CopiesRules(t *testing.T) {
	rules := []Rule{{Type: models.Invoice, Keywords: []string{"PROFORMA"}}}
	c := New(rules)
	rules[0].Keywords[0] = "changed"

	assert.Equal(t, models.Invoice, c.Classify("proforma"))
	assert.Equal(t, models.Unknown, c.Classify("changed"))
}

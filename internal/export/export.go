// Package export writes extracted records as JSON, YAML, CSV or XLSX.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fjacquet/docfields/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet written by the XLSX exporter.
const SheetName = "Records"

// listSeparator joins list values into one CSV or XLSX cell.
const listSeparator = " | "

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatCSV, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use json, yaml, csv or xlsx)", s)
	}
}

// Entry pairs a source file with its record.
type Entry struct {
	File   string                 `json:"file" yaml:"file"`
	Record models.ExtractedRecord `json:"record" yaml:"record"`
	Error  string                 `json:"error,omitempty" yaml:"error,omitempty"`
}

// Row is the flattened, one-line form of an Entry.
type Row struct {
	File           string `csv:"file"`
	DocumentType   string `csv:"document_type"`
	SupplierName   string `csv:"supplier_name"`
	GSTNo          string `csv:"gst_no"`
	GSTVerified    string `csv:"gst_verified"`
	DocumentNumber string `csv:"document_number"`
	DocumentDate   string `csv:"document_date"`
	TotalAmount    string `csv:"total_amount"`
	CustomerName   string `csv:"customer_name"`
	DispatchMode   string `csv:"dispatch_mode"`
	LineItems      string `csv:"line_items"`
	Addresses      string `csv:"addresses"`
	Phones         string `csv:"phones"`
	Emails         string `csv:"emails"`
	Purpose        string `csv:"purpose"`
	PartyDCNumber  string `csv:"party_dc_number"`
	PartyDCDate    string `csv:"party_dc_date"`
	Error          string `csv:"error"`
}

// Columns returns the header names in output order.
func Columns() []string {
	return []string{
		"file", models.KeyDocumentType, models.KeySupplierName, models.KeyGSTNo, models.KeyGSTVerified,
		models.KeyDocumentNumber, models.KeyDocumentDate, models.KeyTotalAmount,
		models.KeyCustomerName, models.KeyDispatchMode, models.KeyLineItems,
		models.KeyAddresses, models.KeyPhones, models.KeyEmails,
		models.KeyPurpose, models.KeyPartyDCNumber, models.KeyPartyDCDate, "error",
	}
}

func (r Row) values() []string {
	return []string{
		r.File, r.DocumentType, r.SupplierName, r.GSTNo, r.GSTVerified, r.DocumentNumber, r.DocumentDate,
		r.TotalAmount, r.CustomerName, r.DispatchMode, r.LineItems, r.Addresses,
		r.Phones, r.Emails, r.Purpose, r.PartyDCNumber, r.PartyDCDate, r.Error,
	}
}

// Flatten converts an entry into a Row. Challan-only columns are empty for other types.
func Flatten(e Entry) Row {
	rec := e.Record
	return Row{
		File:           e.File,
		DocumentType:   rec.String(models.KeyDocumentType),
		SupplierName:   rec.String(models.KeySupplierName),
		GSTNo:          rec.String(models.KeyGSTNo),
		GSTVerified:    strconv.FormatBool(rec.Bool(models.KeyGSTVerified)),
		DocumentNumber: rec.String(models.KeyDocumentNumber),
		DocumentDate:   rec.String(models.KeyDocumentDate),
		TotalAmount:    rec.String(models.KeyTotalAmount),
		CustomerName:   rec.String(models.KeyCustomerName),
		DispatchMode:   rec.String(models.KeyDispatchMode),
		LineItems:      strings.Join(rec.Strings(models.KeyLineItems), listSeparator),
		Addresses:      strings.Join(rec.Addresses(), listSeparator),
		Phones:         strings.Join(rec.Phones(), listSeparator),
		Emails:         strings.Join(rec.Emails(), listSeparator),
		Purpose:        rec.String(models.KeyPurpose),
		PartyDCNumber:  rec.String(models.KeyPartyDCNumber),
		PartyDCDate:    rec.String(models.KeyPartyDCDate),
		Error:          e.Error,
	}
}

// WriteEntries encodes entries to w in the given format.
func WriteEntries(w io.Writer, entries []Entry, format Format) error {
	if entries == nil {
		entries = []Entry{}
	}
	switch format {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatYAML:
		return writeYAML(w, entries)
	case FormatCSV:
		return writeCSV(w, entries)
	case FormatXLSX:
		return writeXLSX(w, entries)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// WriteRecord encodes a single record as JSON or YAML.
func WriteRecord(w io.Writer, rec models.ExtractedRecord, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rec)
	case FormatYAML:
		return writeYAML(w, rec)
	default:
		return fmt.Errorf("format %q is not supported for a single record (use json or yaml)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding YAML: %w", err)
	}
	return enc.Close()
}

func flattenAll(entries []Entry) []*Row {
	rows := make([]*Row, len(entries))
	for i, e := range entries {
		r := Flatten(e)
		rows[i] = &r
	}
	return rows
}

func writeCSV(w io.Writer, entries []Entry) error {
	rows := flattenAll(entries)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csv.NewWriter(w))); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, entries []Entry) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("error creating worksheet: %w", err)
	}

	for i, h := range Columns() {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}
	for r, row := range flattenAll(entries) {
		for c, v := range row.values() {
			if err := setCell(f, c+1, r+2, v); err != nil {
				return err
			}
		}
	}
	for _, cw := range []struct {
		from, to string
		width    float64
	}{{"A", "A", 32}, {"B", "J", 22}, {"K", "N", 48}} {
		if err := f.SetColWidth(SheetName, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("error setting column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing XLSX data: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("error resolving cell: %w", err)
	}
	if err := f.SetCellValue(SheetName, cell, v); err != nil {
		return fmt.Errorf("error writing cell %s: %w", cell, err)
	}
	return nil
}

// Package pdftext reads the native text layer of PDF files and decides
// whether a document needs OCR before its text can be trusted.
package pdftext

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Page is the text of one PDF page. Err is set when that page alone failed.
type Page struct {
	Number int
	Text   string
	Err    error
}

// PageReader defines the interface for reading per-page text from a PDF file.
// This allows the resolver and extractor to be tested without real PDF files.
type PageReader interface {
	// ReadPages returns the pages of the PDF at path in page order.
	// An error means the document itself could not be opened.
	ReadPages(path string) ([]Page, error)
}

// LedongthucReader implements PageReader using github.com/ledongthuc/pdf.
type LedongthucReader struct{}

// NewLedongthucReader creates a new LedongthucReader instance.
func NewLedongthucReader() *LedongthucReader {
	return &LedongthucReader{}
}

// ReadPages opens the PDF and extracts the plain text of each page. The
// underlying library panics on some malformed files; those panics are
// returned as errors.
func (r *LedongthucReader) ReadPages(path string) (pages []Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("read pdf %s: %v", path, rec)
		}
	}()

	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	n := doc.NumPage()
	pages = make([]Page, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, readPage(doc, i))
	}
	return pages, nil
}

func readPage(doc *pdf.Reader, num int) (page Page) {
	page.Number = num
	defer func() {
		if rec := recover(); rec != nil {
			page.Text = ""
			page.Err = fmt.Errorf("page %d: %v", num, rec)
		}
	}()

	p := doc.Page(num)
	if p.V.IsNull() {
		return page
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		page.Err = fmt.Errorf("page %d: %w", num, err)
		return page
	}
	page.Text = text
	return page
}

// MockPageReader implements PageReader for testing purposes.
type MockPageReader struct {
	MockPages []Page
	MockErr   error
	// Calls records the paths passed to ReadPages.
	Calls []string
}

// NewMockPageReader creates a MockPageReader returning one page per text.
func NewMockPageReader(texts ...string) *MockPageReader {
	pages := make([]Page, len(texts))
	for i, t := range texts {
		pages[i] = Page{Number: i + 1, Text: t}
	}
	return &MockPageReader{MockPages: pages}
}

// ReadPages returns the predefined pages or error.
func (m *MockPageReader) ReadPages(path string) ([]Page, error) {
	m.Calls = append(m.Calls, path)
	if m.MockErr != nil {
		return nil, m.MockErr
	}
	return m.MockPages, nil
}

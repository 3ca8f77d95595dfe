package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/jung-kurt/gofpdf"
)

// ErrFontRequired is returned when the dataset contains non-Latin text
// but no Unicode font was configured. The built-in core fonts only
// cover cp1252 and would render CJK text as garbage.
var ErrFontRequired = errors.New("non-latin text requires a configured unicode font")

// pdfFontFamily is the family name the configured TTF is registered
// under.
const pdfFontFamily = "unicode"

// PDFExporter renders datasets into a basic tabular PDF. fontPath may
// point at a TTF covering the roster's script; without one only Latin
// content can be rendered.
type PDFExporter struct {
	fontPath string
	fontData []byte
}

// NewPDFExporter constructs a PDF exporter. fontPath is optional.
func NewPDFExporter(fontPath string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}

	family := "Arial"
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(false)
	if e.fontPath != "" {
		if err := e.loadFont(); err != nil {
			return nil, err
		}
		pdf.AddUTF8FontFromBytes(pdfFontFamily, "", e.fontData)
		pdf.AddUTF8FontFromBytes(pdfFontFamily, "B", e.fontData)
		family = pdfFontFamily
	} else if containsNonLatin(data, title) {
		return nil, ErrFontRequired
	}

	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont(family, "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont(family, "B", 10)
	pageWidth, _ := pdf.GetPageSize()
	colWidth := (pageWidth - 20) / float64(len(data.Headers))
	for _, header := range data.Headers {
		pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) loadFont() error {
	if e.fontData != nil {
		return nil
	}
	data, err := os.ReadFile(e.fontPath)
	if err != nil {
		return fmt.Errorf("load pdf font %s: %w", e.fontPath, err)
	}
	e.fontData = data
	return nil
}

func containsNonLatin(data Dataset, title string) bool {
	hasNonLatin := func(s string) bool {
		for _, r := range s {
			if r > unicode.MaxLatin1 {
				return true
			}
		}
		return false
	}
	if hasNonLatin(title) {
		return true
	}
	for _, header := range data.Headers {
		if hasNonLatin(header) {
			return true
		}
	}
	for _, row := range data.Rows {
		for _, cell := range row {
			if hasNonLatin(cell) {
				return true
			}
		}
	}
	return false
}

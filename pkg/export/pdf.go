package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin   = 20.0
	footerOffset = 10.0
	headerHeight = 9.0
	rowHeight    = 7.5
	brandName    = "NEMI NAVIGATOR"
)

var (
	brandRed  = [3]int{226, 70, 55}
	bodyGrey  = [3]int{60, 60, 60}
	lineGrey  = [3]int{200, 200, 200}
	footerTxt = [3]int{100, 100, 100}
)

// PDFExporter renders tabular reports as A4 portrait documents.
type PDFExporter struct {
	now      func() time.Time
	location *time.Location
	compress bool
}

// NewPDFExporter constructs a PDF exporter stamping dates in loc.
func NewPDFExporter(loc *time.Location) *PDFExporter {
	if loc == nil {
		loc = time.UTC
	}
	return &PDFExporter{now: time.Now, location: loc, compress: true}
}

// Generate renders title, subtitle, a date stamp and a grid table of rows projected
// through columns. Empty rows still produce a document with the table header.
func (e *PDFExporter) Generate(title, subtitle string, columns []Column, rows []map[string]any, filename string) (*Document, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("pdf requires at least one column")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.compress)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(title, true)
	pdf.SetSubject(subtitle, true)
	pdf.SetAuthor(brandName, true)
	pdf.SetCreator(brandName, true)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerOffset - 3)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(footerTxt[0], footerTxt[1], footerTxt[2])
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("%s - Página %d de {nb}", brandName, pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pageWidth, pageHeight := pdf.GetPageSize()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(brandRed[0], brandRed[1], brandRed[2])
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(bodyGrey[0], bodyGrey[1], bodyGrey[2])
	pdf.CellFormat(0, 8, tr(subtitle), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, tr("Fecha: "+LongDate(e.now().In(e.location))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	colWidth := (pageWidth - 2*pageMargin) / float64(len(columns))
	pdf.SetDrawColor(lineGrey[0], lineGrey[1], lineGrey[2])
	pdf.SetLineWidth(0.1)

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(brandRed[0], brandRed[1], brandRed[2])
		pdf.SetTextColor(255, 255, 255)
		for _, col := range columns {
			pdf.CellFormat(colWidth, headerHeight, fit(pdf, tr(col.Header), colWidth), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(bodyGrey[0], bodyGrey[1], bodyGrey[2])
	}
	drawHeader()

	bottom := pageHeight - pageMargin
	for _, row := range rows {
		if pdf.GetY()+rowHeight > bottom {
			pdf.AddPage()
			drawHeader()
		}
		for _, col := range columns {
			pdf.CellFormat(colWidth, rowHeight, fit(pdf, tr(cellText(row, col.Key)), colWidth), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return &Document{Filename: filename + ".pdf", ContentType: "application/pdf", Data: buf.Bytes()}, nil
}

// fit shortens already-translated single-byte text with an ellipsis until it fits
// the cell width including padding.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	b := []byte(text)
	for len(b) > 0 && pdf.GetStringWidth(string(b)+"...") > limit {
		b = b[:len(b)-1]
	}
	return string(b) + "..."
}

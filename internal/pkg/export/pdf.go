package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 10.0
	pdfLineHeight = 5.0
	pdfCellPad    = 1.5
)

// PDF writes t as an A4 document, landscape when the table is wide.
func PDF(w io.Writer, t Table) error {
	pdf := renderPDF(t)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func renderPDF(t Table) *gofpdf.Fpdf {
	orientation := "P"
	if len(t.Header) > 6 {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin+5)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if !t.GeneratedAt.IsZero() {
		generated := tr("Generated on " + t.GeneratedAt.Format("02 January 2006 15:04"))
		pdf.SetFooterFunc(func() {
			pdf.SetY(-12)
			pdf.SetFont("Arial", "I", 8)
			pdf.CellFormat(0, 6, generated, "", 0, "L", false, 0, "")
			pdf.SetX(pdfMargin)
			pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
		})
	}

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
	if t.Subtitle != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, tr(t.Subtitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if len(t.Header) == 0 {
		return pdf
	}

	pageWidth, _ := pdf.GetPageSize()
	colWidth := (pageWidth - 2*pdfMargin) / float64(len(t.Header))

	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range t.Header {
			pdf.CellFormat(colWidth, 8, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", 9)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	for _, row := range t.Rows {
		lines := make([][]string, len(t.Header))
		maxLines := 1
		for i := range t.Header {
			for _, l := range pdf.SplitLines([]byte(tr(cell(row, i))), colWidth-2*pdfCellPad) {
				lines[i] = append(lines[i], string(l))
			}
			if len(lines[i]) > maxLines {
				maxLines = len(lines[i])
			}
		}
		rowHeight := float64(maxLines)*pdfLineHeight + 2*pdfCellPad

		if pdf.GetY()+rowHeight > pageHeight-pdfMargin-5 {
			pdf.AddPage()
			header()
		}

		x, y := pdf.GetXY()
		for i := range t.Header {
			pdf.Rect(x+float64(i)*colWidth, y, colWidth, rowHeight, "D")
			for j, l := range lines[i] {
				pdf.SetXY(x+float64(i)*colWidth+pdfCellPad, y+pdfCellPad+float64(j)*pdfLineHeight)
				pdf.CellFormat(colWidth-2*pdfCellPad, pdfLineHeight, l, "", 0, "L", false, 0, "")
			}
		}
		pdf.SetXY(x, y+rowHeight)
	}

	return pdf
}

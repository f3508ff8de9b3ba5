package infra

// pdf.go — report rendering using go-pdf/fpdf.
// Flattened report rows (label/value and table rows) are laid out as an A4
// document: single-cell rows become section headings, multi-cell rows become
// table lines.

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// WriteRowsPDF renders pre-flattened export rows as an A4 PDF document and
// writes it to w. Empty rows become vertical spacing, single-cell rows become
// headings, and wider rows are laid out as table lines with the first column
// double width.
func WriteRowsPDF(w io.Writer, title string, rows [][]string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 14, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	for _, row := range rows {
		switch {
		case len(row) == 0:
			pdf.Ln(3)
		case len(row) == 1:
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(contentW, 6, strings.Trim(row[0], "= "), "B", 1, "L", false, 0, "")
		default:
			pdf.SetFont("Helvetica", "", 8)
			cellW := contentW / float64(len(row)+1)
			for i, cell := range row {
				width := cellW
				align := "R"
				if i == 0 {
					width = cellW * 2
					align = "L"
				}
				breakAfter := 0
				if i == len(row)-1 {
					breakAfter = 1
				}
				pdf.CellFormat(width, 5, cell, "", breakAfter, align, false, 0, "")
			}
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: render: %w", err)
	}
	return nil
}

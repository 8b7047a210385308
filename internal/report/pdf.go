package report

import (
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

const (
	pdfPageWidth   = 210.0
	pdfMargin      = 20.0
	pdfImageWidth  = 170.0
	pdfImageBreakY = 165.0
)

// writePDF renders the report view to a PDF file. Figure names are
// resolved against figDir.
func writePDF(path string, v view, figDir string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(v.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 14, tr(v.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 7, tr("Laser ablation synthesis, generated "+v.GeneratedAt), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for _, sec := range v.Sections {
		writePDFSection(pdf, tr, sec, figDir)
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, "Conclusions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, c := range v.Conclusions {
		pdf.MultiCell(0, 5, tr("- "+c), "", "L", false)
		pdf.Ln(1)
	}

	return pdf.OutputFileAndClose(path)
}

func writePDFSection(pdf *fpdf.Fpdf, tr func(string) string, sec Section, figDir string) {
	if pdf.GetY() > pdfImageBreakY {
		pdf.AddPage()
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, tr(sec.Title), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	if !sec.Available {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(150, 90, 40)
		pdf.MultiCell(0, 5, tr(sec.Missing), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
		return
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(240, 244, 248)
	for _, st := range sec.Stats {
		pdf.CellFormat(80, 6, tr(st.Label), "1", 0, "L", true, 0, "")
		pdf.CellFormat(0, 6, tr(st.Value), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	for _, f := range sec.Findings {
		pdf.MultiCell(0, 5, tr("- "+f), "", "L", false)
	}
	pdf.Ln(2)

	for _, name := range sec.Figures {
		file := filepath.Join(figDir, name)
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if pdf.GetY() > pdfImageBreakY {
			pdf.AddPage()
		}
		x := (pdfPageWidth - pdfImageWidth) / 2
		pdf.ImageOptions(file, x, pdf.GetY(), pdfImageWidth, 0, true,
			fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
		pdf.Ln(3)
	}
	pdf.Ln(4)
}

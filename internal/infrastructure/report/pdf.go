// Package report renders a finished discovery run into downloadable formats:
// the court-ready PDF methodology report and an XLSX load file.
package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

// Renderer implements ports.ReportRenderer.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

const (
	pageLeft   = 14.0
	pageRight  = 14.0
	lineHeight = 4.5
)

var columnWidths = [4]float64{34, 44, 24, 80}

var columnTitles = [4]string{"Doc ID", "Filename", "Decision", "Reasoning"}

// RenderPDF produces the AI Methodology Report: title, generation date, the
// discovery query, summary counts and one striped table row per result in
// store order.
func (r *Renderer) RenderPDF(report domain.DiscoveryReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageLeft, 16, pageRight)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AddPage()

	pdf.SetFont("Times", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 9, "AI Methodology Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Times", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 6, fmt.Sprintf("Report generated on: %s", report.GeneratedAt.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Times", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "Discovery Query:", "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.MultiCell(0, lineHeight, report.Query, "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Times", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "Summary:", "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(0, 5, fmt.Sprintf("Total Documents Processed: %d", report.Summary.Total), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Relevant: %d", report.Summary.Relevant), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Not Relevant: %d", report.Summary.NotRelevant), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	r.renderTable(pdf, report.Results)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderTable(pdf *fpdf.Fpdf, results []domain.DiscoveryResult) {
	_, pageHeight := pdf.GetPageSize()
	breakLimit := pageHeight - 20

	r.renderTableHeader(pdf)

	pdf.SetTextColor(30, 30, 30)
	for i, res := range results {
		cells := [4]string{res.DocID, res.DocName, string(res.Decision), res.Reasoning}

		pdf.SetFont("Times", "", 8)
		rowHeight := lineHeight
		var lines [4][]string
		for c, content := range cells {
			lines[c] = pdf.SplitText(content, columnWidths[c]-2)
			if h := float64(len(lines[c])) * lineHeight; h > rowHeight {
				rowHeight = h
			}
		}
		rowHeight += 2

		if pdf.GetY()+rowHeight > breakLimit {
			pdf.AddPage()
			r.renderTableHeader(pdf)
			pdf.SetFont("Times", "", 8)
			pdf.SetTextColor(30, 30, 30)
		}

		y := pdf.GetY()
		if i%2 == 1 {
			pdf.SetFillColor(240, 240, 240)
			pdf.Rect(pageLeft, y, tableWidth(), rowHeight, "F")
		}

		x := pageLeft
		for c := range cells {
			pdf.SetXY(x+1, y+1)
			pdf.MultiCell(columnWidths[c]-2, lineHeight, cells[c], "", "L", false)
			x += columnWidths[c]
		}
		pdf.SetXY(pageLeft, y+rowHeight)
	}
}

func (r *Renderer) renderTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Times", "B", 8)
	pdf.SetFillColor(40, 40, 40)
	pdf.SetTextColor(255, 255, 255)
	for c, title := range columnTitles {
		last := c == len(columnTitles)-1
		ln := 0
		if last {
			ln = 1
		}
		pdf.CellFormat(columnWidths[c], 6, title, "", ln, "L", true, 0, "")
	}
}

func tableWidth() float64 {
	total := 0.0
	for _, w := range columnWidths {
		total += w
	}
	return total
}

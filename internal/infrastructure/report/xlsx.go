package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/discoverycraft/ediscovery-assistant/internal/core/domain"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// RenderXLSX produces a load-file style spreadsheet: a Results sheet with one
// row per result (category flag columns included when the run produced them)
// and a Summary sheet with the query and headline counts.
func (r *Renderer) RenderXLSX(report domain.DiscoveryReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return nil, fmt.Errorf("rename results sheet: %w", err)
	}

	withDetails := false
	for _, res := range report.Results {
		if len(res.RelevanceDetails) > 0 {
			withDetails = true
			break
		}
	}

	headers := []string{"Doc ID", "Filename", "Decision", "Reasoning"}
	if withDetails {
		headers = append(headers, domain.RelevanceCategories...)
	}
	for col, header := range headers {
		if err := setCell(f, resultsSheet, col+1, 1, header); err != nil {
			return nil, err
		}
	}

	for i, res := range report.Results {
		row := i + 2
		values := []any{res.DocID, res.DocName, string(res.Decision), res.Reasoning}
		if withDetails {
			for _, category := range domain.RelevanceCategories {
				values = append(values, res.RelevanceDetails[category])
			}
		}
		for col, value := range values {
			if err := setCell(f, resultsSheet, col+1, row, value); err != nil {
				return nil, err
			}
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	summaryRows := []struct {
		label string
		value any
	}{
		{"Discovery Query", report.Query},
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Total Documents Processed", report.Summary.Total},
		{"Relevant", report.Summary.Relevant},
		{"Not Relevant", report.Summary.NotRelevant},
		{"Pending", report.Summary.Pending},
	}
	for i, entry := range summaryRows {
		if err := setCell(f, summarySheet, 1, i+1, entry.label); err != nil {
			return nil, err
		}
		if err := setCell(f, summarySheet, 2, i+1, entry.value); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx output: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell coordinates (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
	}
	return nil
}

package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ApprovedSheet is the worksheet name of the approved-projects export.
const ApprovedSheet = "Approved Projects"

// ApprovedColumns is the fixed column order of the approved-projects export.
var ApprovedColumns = []string{
	"Project Name",
	"Approved",
	"TRL Level",
	"TRL Segment",
	"Mentor",
	"Location",
	"Language Level",
	"Score TRL 1-3",
	"Score TRL 4-7",
	"Score TRL 8-9",
	"Total Score",
	"Insights",
}

func approvedRow(p ProjectView) []any {
	return []any{
		p.Name,
		yesNo(p.Approved),
		p.Level,
		string(p.Segment),
		yesNo(p.Mentor),
		p.Location,
		p.Language,
		p.Scores.Early,
		p.Scores.Mid,
		p.Scores.Late,
		p.Total,
		strings.Join(p.Insights, ", "),
	}
}

// WriteApprovedXLSX writes projects as a styled spreadsheet. Callers pass
// the approved projects; the rows are written in the given order.
func WriteApprovedXLSX(w io.Writer, projects []ProjectView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ApprovedSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"6D28D9"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("body style: %w", err)
	}

	for i, col := range ApprovedColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ApprovedSheet, cell, col); err != nil {
			return fmt.Errorf("writing header %s: %w", col, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(ApprovedColumns), 1)
	if err := f.SetCellStyle(ApprovedSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for r, p := range projects {
		for c, v := range approvedRow(p) {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(ApprovedSheet, cell, v); err != nil {
				return fmt.Errorf("writing %s: %w", cell, err)
			}
		}
	}
	if len(projects) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(ApprovedColumns), len(projects)+1)
		if err := f.SetCellStyle(ApprovedSheet, "A2", end, bodyStyle); err != nil {
			return fmt.Errorf("styling rows: %w", err)
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(ApprovedColumns))
	if err := f.SetColWidth(ApprovedSheet, "A", lastCol, 25); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the table.
const SheetName = "Report"

// XLSX writes t as a single-sheet workbook: title in A1, subtitle in A2, then the
// header row and the data rows.
func XLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create body style: %w", err)
	}

	row := 1
	if err := f.SetCellValue(SheetName, "A1", t.Title); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", "A1", titleStyle); err != nil {
		return err
	}
	if t.Subtitle != "" {
		row++
		if err := f.SetCellValue(SheetName, fmt.Sprintf("A%d", row), t.Subtitle); err != nil {
			return err
		}
	}
	row += 2

	for i, h := range t.Header {
		name, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, name, h); err != nil {
			return err
		}
	}
	if len(t.Header) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(t.Header), row)
		if err := f.SetCellStyle(SheetName, first, last, headerStyle); err != nil {
			return err
		}
	}

	for _, r := range t.Rows {
		row++
		for i := range t.Header {
			name, _ := excelize.CoordinatesToCellName(i+1, row)
			if err := f.SetCellValue(SheetName, name, cell(r, i)); err != nil {
				return err
			}
			if err := f.SetCellStyle(SheetName, name, name, bodyStyle); err != nil {
				return err
			}
		}
	}

	if len(t.Header) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(t.Header))
		if err := f.SetColWidth(SheetName, "A", lastCol, 18); err != nil {
			return err
		}
	}
	if !t.GeneratedAt.IsZero() {
		footer := fmt.Sprintf("A%d", row+2)
		if err := f.SetCellValue(SheetName, footer, "Generated on "+t.GeneratedAt.Format("02 January 2006 15:04")); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"hoteldesk/internal/domain/pricing"
	"hoteldesk/internal/domain/shared/money"
)

const sheetName = "Rate Sheet"

// RateSheet renders a monthly rate grid as an .xlsx workbook: one row per
// stay type, one column per day of month, rates rounded for display.
func RateSheet(year int, month time.Month, grid []pricing.GridRow) ([]byte, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: drop default sheet: %w", err)
	}

	days := 0
	for _, row := range grid {
		if len(row.Rates) > days {
			days = len(row.Rates)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("export: header style: %w", err)
	}

	if err := setCell(f, 1, 1, fmt.Sprintf("%s %d", month, year)); err != nil {
		f.Close()
		return nil, err
	}
	for day := 1; day <= days; day++ {
		if err := setCell(f, day+1, 1, day); err != nil {
			f.Close()
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(days+1, 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: apply header style: %w", err)
	}

	for i, row := range grid {
		r := i + 2
		if err := setCell(f, 1, r, row.Label); err != nil {
			f.Close()
			return nil, err
		}
		for day, rate := range row.Rates {
			if err := setCell(f, day+2, r, money.Round2(rate)); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true,
		XSplit: 1,
		YSplit: 1,
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("export: close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("export: cell coordinates: %w", err)
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("export: set cell %s: %w", cell, err)
	}
	return nil
}

package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Horários"

// XLSXExporter renders a Table as a single-sheet workbook.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render writes an optional merged title row, a styled header row and the
// table body.
func (e *XLSXExporter) Render(table Table) ([]byte, error) {
	if err := table.validate("xlsx"); err != nil {
		return nil, err
	}
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("remove default sheet: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(table.Headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 14); err != nil {
		return nil, err
	}
	if len(table.Headers) > 1 {
		if err := f.SetColWidth(xlsxSheet, "B", lastCol, 28); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1E3A8A"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("body style: %w", err)
	}

	row := 1
	if table.Title != "" {
		if err := f.SetCellValue(xlsxSheet, "A1", table.Title); err != nil {
			return nil, err
		}
		if err := f.MergeCell(xlsxSheet, "A1", lastCol+"1"); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(xlsxSheet, "A1", "A1", headerStyle); err != nil {
			return nil, err
		}
		row++
	}

	for i, header := range table.Headers {
		if err := f.SetCellValue(xlsxSheet, cellName(i, row), header); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(xlsxSheet, cellName(0, row), cellName(len(table.Headers)-1, row), headerStyle); err != nil {
		return nil, err
	}
	row++

	for _, values := range table.Rows {
		for i := range table.Headers {
			if err := f.SetCellValue(xlsxSheet, cellName(i, row), table.cell(values, i)); err != nil {
				return nil, err
			}
		}
		if err := f.SetCellStyle(xlsxSheet, cellName(0, row), cellName(len(table.Headers)-1, row), bodyStyle); err != nil {
			return nil, err
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}

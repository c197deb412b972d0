package main

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// writeReportXLSX renders a report as a spreadsheet: header block on top,
// then the same item × donetime grid the print view shows.
func writeReportXLSX(w io.Writer, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	head := [][2]string{
		{"Date", rep.ShiftDate},
		{"Shift", rep.Shift},
		{"Station", rep.Station},
		{"Operator", rep.Header.Operator},
		{"Product", rep.Header.Product},
		{"Production order", rep.Header.ProductionOrder},
	}
	for i, kv := range head {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+1), kv[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), kv[1])
	}

	gridTop := len(head) + 2 // one blank row between header and grid
	f.SetCellValue(sheet, fmt.Sprintf("A%d", gridTop), "Item")
	for c, donetime := range rep.Columns {
		cell, err := excelize.CoordinatesToCellName(c+2, gridTop)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, donetime)
	}
	for ri, row := range rep.Matrix {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", gridTop+1+ri), row.Label)
		for ci, val := range row.Values {
			cell, err := excelize.CoordinatesToCellName(ci+2, gridTop+1+ri)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, val)
		}
	}
	f.SetColWidth(sheet, "A", "A", 38)

	_, err := f.WriteTo(w)
	return err
}

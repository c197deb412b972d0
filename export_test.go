package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteReportXLSX(t *testing.T) {
	rep := Report{
		Columns: []string{"06:05", "07:10"},
		Matrix: []ReportRow{
			{Label: "Θερμοκρασία λαμινατορίου (°C)", Values: []string{"72.5", "73"}},
			{Label: "Είδος μαργαρίνης", Values: []string{"Master Gold", ""}},
		},
		Header:    Header{Operator: "Kostas", Product: "Croissant 70g", ProductionOrder: "PO-4411"},
		ShiftDate: "2024-01-01",
		Shift:     "A",
		Station:   "Laminator 1",
	}

	var buf bytes.Buffer
	require.NoError(t, writeReportXLSX(&buf, rep))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Sheet1", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Date", cell("A1"))
	assert.Equal(t, "2024-01-01", cell("B1"))
	assert.Equal(t, "Kostas", cell("B4"))

	// Grid starts after the header block and a blank row.
	assert.Equal(t, "Item", cell("A8"))
	assert.Equal(t, "06:05", cell("B8"))
	assert.Equal(t, "07:10", cell("C8"))
	assert.Equal(t, "Θερμοκρασία λαμινατορίου (°C)", cell("A9"))
	assert.Equal(t, "72.5", cell("B9"))
	assert.Equal(t, "Master Gold", cell("B10"))
}

package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one raw checklist submission as returned by the Evocon API.
// Item values arrive as string, number or null depending on the checklist
// field, so every read goes through Str.
type Record map[string]any

// Str returns the named field coerced to a trimmed string ("" when the
// field is missing or null).
func (r Record) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(stringify(v))
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64: // JSON numbers
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// ShiftGroup is one distinct (shiftDate, shift, station) combination found
// in a record batch, annotated with the latest donetime seen for it.
type ShiftGroup struct {
	ShiftDate string
	Shift     string
	Station   string
	LastTime  string // "HH:MM", "" if no donetime parsed

	lastMin int // minute of day, valid only when hasTime
	hasTime bool
}

// Key is the composite selection key used by the picker links.
func (g ShiftGroup) Key() string {
	return g.ShiftDate + "|" + g.Shift + "|" + g.Station
}

// Header is the report metadata taken from the latest submission column.
type Header struct {
	Operator        string
	Product         string
	ProductionOrder string
}

// ReportRow is one checklist item with its value per submission column.
type ReportRow struct {
	Label  string
	Values []string // aligned to Report.Columns, "" where absent
}

// Report is the item × submission-time matrix for one selected shift,
// handed to the print template as-is.
type Report struct {
	Columns []string // donetimes in shift-chronological order
	Matrix  []ReportRow
	Header  Header

	ShiftDate string
	Shift     string
	Station   string
}

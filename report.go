package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// --- tiny helpers ---

// normalizeValue cleans a raw item result for display: nil and the usual
// "no value" placeholders become "", decimal commas become periods.
func normalizeValue(v any) string {
	if v == nil {
		return ""
	}
	s := strings.TrimSpace(stringify(v))
	switch s {
	case "-", "N/A", "n/a":
		return ""
	}
	return strings.ReplaceAll(s, ",", ".")
}

// parseHHMM parses a 24h "HH:MM" string into a minute of day.
// ok is false on anything that doesn't parse; never an error.
func parseHHMM(s string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func fmtHHMM(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// shiftKey orders a donetime relative to the shift's nominal start, so a
// shift crossing midnight still sorts chronologically: for a 22:00 shift,
// "23:00" keys to 60 and "01:00" to 180. Unknown shifts and unparsable
// times anchor at 00:00.
func shiftKey(donetime, shiftName string, starts map[string]string) int {
	start := 0
	if s, ok := starts[shiftName]; ok {
		if m, ok := parseHHMM(s); ok {
			start = m
		}
	}
	m, _ := parseHHMM(donetime)
	return ((m-start)%minutesPerDay + minutesPerDay) % minutesPerDay
}

// sortDonetimes sorts "HH:MM" strings into shift-chronological order.
// The sort is stable, so equal keys keep their incoming order.
func sortDonetimes(times []string, shiftName string, starts map[string]string) []string {
	out := slices.Clone(times)
	slices.SortStableFunc(out, func(a, b string) int {
		return cmp.Compare(shiftKey(a, shiftName, starts), shiftKey(b, shiftName, starts))
	})
	return out
}

// --- shift index ---

// buildShiftIndex scans a record batch and returns the distinct
// (shiftDate, shift, station) groups, most recent first. Records missing
// any of the four key fields are skipped; every surviving record feeds the
// group's LastTime (the max parsed donetime, absent never beats present).
func buildShiftIndex(rows []Record) []ShiftGroup {
	type key struct{ date, shift, station string }
	at := map[key]int{} // key -> index into groups
	var groups []ShiftGroup

	for _, r := range rows {
		sd := r.Str("shiftDate")
		sh := r.Str("shift")
		st := r.Str("station")
		dt := r.Str("donetime")
		if sd == "" || sh == "" || st == "" || dt == "" {
			continue
		}

		m, ok := parseHHMM(dt)
		k := key{sd, sh, st}
		if i, seen := at[k]; seen {
			g := &groups[i]
			if ok && (!g.hasTime || m > g.lastMin) {
				g.lastMin, g.hasTime = m, true
				g.LastTime = fmtHHMM(m)
			}
			continue
		}
		at[k] = len(groups)
		g := ShiftGroup{ShiftDate: sd, Shift: sh, Station: st}
		if ok {
			g.lastMin, g.hasTime = m, true
			g.LastTime = fmtHHMM(m)
		}
		groups = append(groups, g)
	}

	// Most recent date first, then latest activity within the date.
	// Unparsable dates and groups with no parsed time sort oldest.
	slices.SortStableFunc(groups, func(a, b ShiftGroup) int {
		if c := b.sortDate().Compare(a.sortDate()); c != 0 {
			return c
		}
		return cmp.Compare(b.sortMin(), a.sortMin())
	})
	return groups
}

func (g ShiftGroup) sortDate() time.Time {
	d, err := time.Parse("2006-01-02", g.ShiftDate)
	if err != nil {
		return time.Time{}
	}
	return d
}

// Absent last_time keys as 00:00, tying with a group whose latest entry
// really is midnight.
func (g ShiftGroup) sortMin() int {
	if !g.hasTime {
		return 0
	}
	return g.lastMin
}

// --- report matrix ---

// buildReport pivots the records of one (shiftDate, shift, station) into an
// item × donetime matrix. Rows follow the catalog order exactly; columns are
// the donetimes seen for cataloged items, in shift-chronological order. The
// header triple comes from the first record seen at the latest column.
// No data for the selection means empty Columns, not an error.
func buildReport(rows []Record, shiftDate, shiftName, station string, catalog []string, starts map[string]string) Report {
	allowed := make(map[string]bool, len(catalog))
	for _, item := range catalog {
		allowed[item] = true
	}

	subs := map[string]map[string]string{} // donetime -> item -> value
	meta := map[string]Header{}
	var order []string // donetimes in first-seen order, for a stable sort

	for _, r := range rows {
		if r.Str("shiftDate") != shiftDate || r.Str("shift") != shiftName || r.Str("station") != station {
			continue
		}
		dt := r.Str("donetime")
		item := r.Str("itemname")
		if dt == "" || !allowed[item] {
			continue
		}

		if _, ok := subs[dt]; !ok {
			subs[dt] = map[string]string{}
			order = append(order, dt)
		}
		subs[dt][item] = normalizeValue(r["itemresult"]) // last write wins

		if _, ok := meta[dt]; !ok { // first seen wins
			meta[dt] = Header{
				Operator:        r.Str("operator"),
				Product:         r.Str("productproduced"),
				ProductionOrder: r.Str("productionOrder"),
			}
		}
	}

	columns := sortDonetimes(order, shiftName, starts)

	matrix := make([]ReportRow, 0, len(catalog))
	for _, item := range catalog {
		vals := make([]string, 0, len(columns))
		for _, c := range columns {
			vals = append(vals, subs[c][item])
		}
		matrix = append(matrix, ReportRow{Label: item, Values: vals})
	}

	var hdr Header
	if len(columns) > 0 {
		hdr = meta[columns[len(columns)-1]]
	}

	return Report{
		Columns:   columns,
		Matrix:    matrix,
		Header:    hdr,
		ShiftDate: shiftDate,
		Shift:     shiftName,
		Station:   station,
	}
}

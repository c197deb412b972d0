package main

import (
	"context"
	"time"
)

// DemoSource serves a canned record batch instead of the remote API, so the
// picker and print views can be tried without Evocon credentials.
type DemoSource struct{}

func (DemoSource) Fetch(ctx context.Context, startDate, endDate string) ([]Record, error) {
	return demoRecords(), nil
}

func demoRecords() []Record {
	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	rec := func(date, shift, station, donetime, item string, result any, operator, product, order string) Record {
		return Record{
			"shiftDate":       date,
			"shift":           shift,
			"station":         station,
			"donetime":        donetime,
			"itemname":        item,
			"itemresult":      result,
			"operator":        operator,
			"productproduced": product,
			"productionOrder": order,
		}
	}

	return []Record{
		// Morning shift on the laminator line, two submission rounds.
		rec(today, "A", "Laminator 1", "06:10", "Θερμοκρασία λαμινατορίου (°C)", "72,5", "Kostas", "Croissant 70g", "PO-4411"),
		rec(today, "A", "Laminator 1", "06:10", "Είδος μαργαρίνης", "Master Gold", "Kostas", "Croissant 70g", "PO-4411"),
		rec(today, "A", "Laminator 1", "06:10", "Θερμοκρασία μαργαρίνης (°C)", 14.5, "Kostas", "Croissant 70g", "PO-4411"),
		rec(today, "A", "Laminator 1", "06:10", "Ποσοστό μαργαρίνης (%)", "24", "Kostas", "Croissant 70g", "PO-4411"),
		rec(today, "A", "Laminator 1", "08:05", "Θερμοκρασία λαμινατορίου (°C)", "73", "Kostas", "Croissant 70g", "PO-4411"),
		rec(today, "A", "Laminator 1", "08:05", "Λαμάκι μαργαρίνης (mm)", "3,2", "Kostas", "Croissant 70g", "PO-4411"),
		rec(today, "A", "Laminator 1", "08:05", "Λαμάκι recupero (mm)", "-", "Kostas", "Croissant 70g", "PO-4411"),

		// Night shift crossing midnight: 23:40 belongs before 01:15 here.
		rec(yesterday, "Γ", "Laminator 1", "23:40", "Θερμοκρασία λαμινατορίου (°C)", "71", "Maria", "Sfoliata 85g", "PO-4398"),
		rec(yesterday, "Γ", "Laminator 1", "23:40", "Διάκενο μαχαιριών (cm)", "1,8", "Maria", "Sfoliata 85g", "PO-4398"),
		rec(yesterday, "Γ", "Laminator 1", "01:15", "Θερμοκρασία λαμινατορίου (°C)", "70,5", "Maria", "Sfoliata 85g", "PO-4398"),
		rec(yesterday, "Γ", "Laminator 1", "01:15", "Πάχος extruder (1η)", "N/A", "Maria", "Sfoliata 85g", "PO-4398"),

		// Second station, single round, some fields left blank upstream.
		rec(yesterday, "B", "Laminator 2", "15:30", "Θερμοκρασία λαμινατορίου (°C)", 72, "", "Croissant 45g", ""),
		rec(yesterday, "B", "Laminator 2", "15:30", "Ποσοστό ανακύκλωσης ζύμης recupero (%)", "12,5", "", "Croissant 45g", ""),

		// The API also returns items outside our catalog; they must not
		// grow the matrix.
		rec(today, "A", "Laminator 1", "08:05", "Καθαριότητα χώρου", "OK", "Kostas", "Croissant 70g", "PO-4411"),
	}
}

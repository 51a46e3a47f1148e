package workout

import (
	"fmt"
	"strings"
)

const (
	DATE     = "Date"
	SECTION  = "Section"
	EXERCISE = "Exercise"
	NOTES    = "Notes"
)

// Record is one row of the workout log, keyed by the column names of the log header row. Every record
// mapped from the same fetch has the same set of keys.
type Record map[string]string

func (r Record) Date() string {
	return r[DATE]
}

// Day returns the YYYY-MM-DD part of the Date cell, dropping any time-of-day suffix.
func (r Record) Day() string {
	v := clean(r[DATE])
	if len(v) > 10 {
		return v[:10]
	}

	return v
}

func (r Record) Section() string {
	return r[SECTION]
}

func (r Record) Exercise() string {
	return r[EXERCISE]
}

func (r Record) Notes() string {
	return r[NOTES]
}

// Fields returns the record values in header order.
func (r Record) Fields(header []string) []string {
	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = r[h]
	}

	return fields
}

// MapRows zips the header names with the cells of each data row. Cells missing from short rows map to
// an empty string and cells beyond the header width are ignored.
func MapRows(header []string, rows [][]string) []Record {
	records := make([]Record, 0, len(rows))

	for _, row := range rows {
		record := make(Record, len(header))
		for i, h := range header {
			v := ""
			if i < len(row) {
				v = row[i]
			}

			record[h] = v
		}

		records = append(records, record)
	}

	return records
}

// Strings converts a row of Google Sheets cell values to strings.
func Strings(row []any) []string {
	list := make([]string, len(row))
	for i, v := range row {
		switch s := v.(type) {
		case string:
			list[i] = s
		case nil:
			list[i] = ""
		default:
			list[i] = fmt.Sprintf("%v", v)
		}
	}

	return list
}

// Rows converts a Google Sheets value range to string rows.
func Rows(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = Strings(row)
	}

	return rows
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}

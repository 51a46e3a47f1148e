package google

import (
	"testing"
)

func TestColumn(t *testing.T) {
	tests := map[int]string{
		-1:  "",
		0:   "A",
		4:   "E",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		51:  "AZ",
		52:  "BA",
		701: "ZZ",
		702: "AAA",
	}

	for index, expected := range tests {
		if column := Column(index); column != expected {
			t.Errorf("Incorrect column for %v - expected:%v, got:%v", index, expected, column)
		}
	}
}

func TestCell(t *testing.T) {
	tests := []struct {
		tab      string
		column   int
		row      int
		expected string
	}{
		{"WorkoutLog", 4, 2, "WorkoutLog!E2"},
		{"Workout Log", 0, 1, "'Workout Log'!A1"},
		{"Bob's Log", 26, 10, "'Bob''s Log'!AA10"},
	}

	for _, v := range tests {
		if cell := Cell(v.tab, v.column, v.row); cell != v.expected {
			t.Errorf("Incorrect cell - expected:%v, got:%v", v.expected, cell)
		}
	}
}

func TestTab(t *testing.T) {
	tests := map[string]string{
		"WorkoutLog!A:Z":   "WorkoutLog",
		"Exercises!A:D":    "Exercises",
		"'Workout Log'!A1": "Workout Log",
		"'Bob''s Log'!A:Z": "Bob's Log",
		"A1:Z10":           "",
	}

	for area, expected := range tests {
		if tab := Tab(area); tab != expected {
			t.Errorf("Incorrect tab for %v - expected:%v, got:%v", area, expected, tab)
		}
	}
}

func TestSheetID(t *testing.T) {
	tests := map[string]string{
		"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms":             "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		"https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0": "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		" 1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms ":                                                 "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
	}

	for v, expected := range tests {
		if id, err := SheetID(v); err != nil {
			t.Errorf("Unexpected error for %q (%v)", v, err)
		} else if id != expected {
			t.Errorf("Incorrect ID for %q - expected:%v, got:%v", v, expected, id)
		}
	}

	for _, v := range []string{"", "https://example.com/spreadsheets/d/abc", "not an id"} {
		if _, err := SheetID(v); err == nil {
			t.Errorf("Expected error for %q", v)
		}
	}
}

func TestStartRow(t *testing.T) {
	tests := map[string]int{
		"WorkoutLog!A:Z":      1,
		"WorkoutLog!A3:Z":     3,
		"'Workout Log'!B12:F": 12,
		"WorkoutLog!$A$5:$Z":  5,
		"A2:Z100":             2,
		"WorkoutLog":          1,
		"WorkoutLog!4:200":    4,
		"":                    1,
	}

	for area, expected := range tests {
		if row := StartRow(area); row != expected {
			t.Errorf("Incorrect start row for %v - expected:%v, got:%v", area, expected, row)
		}
	}
}

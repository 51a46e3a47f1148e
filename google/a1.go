package google

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	urlRegex   = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)
	idRegex    = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	plainRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	tabRegex   = regexp.MustCompile(`^(.+?)!.*$`)
	a1Regex    = regexp.MustCompile(`^\$?[a-zA-Z]{0,3}\$?([0-9]*)(?::\$?[a-zA-Z]{0,3}\$?[0-9]*)?$`)
)

// SheetID extracts the spreadsheet ID from a Google Sheets URL. A bare spreadsheet ID is returned as is.
func SheetID(v string) (string, error) {
	v = strings.TrimSpace(v)

	if match := urlRegex.FindStringSubmatch(v); len(match) > 1 && match[1] != "" {
		return match[1], nil
	}

	if idRegex.MatchString(v) {
		return v, nil
	}

	return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
}

// Column returns the A1 column letters for a 0-based column index, e.g. 0 is A and 26 is AA.
func Column(index int) string {
	if index < 0 {
		return ""
	}

	column := ""
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		column = string(rune('A'+(n-1)%26)) + column
	}

	return column
}

// Cell returns the A1 reference for a 0-based column and 1-based row of a worksheet.
func Cell(tab string, column int, row int) string {
	return fmt.Sprintf("%v!%v%v", Quote(tab), Column(column), row)
}

// Tab returns the worksheet name of an A1 range, e.g. WorkoutLog for 'WorkoutLog!A:Z'.
func Tab(area string) string {
	match := tabRegex.FindStringSubmatch(area)
	if len(match) < 2 {
		return ""
	}

	tab := strings.TrimSpace(match[1])
	if len(tab) > 1 && strings.HasPrefix(tab, "'") && strings.HasSuffix(tab, "'") {
		tab = strings.ReplaceAll(tab[1:len(tab)-1], "''", "'")
	}

	return tab
}

// StartRow returns the 1-based sheet row of the first row of an A1 range, e.g. 3 for 'WorkoutLog!A3:Z'.
// Ranges without a start row (whole columns or a whole tab) start on row 1.
func StartRow(area string) int {
	ref := strings.TrimSpace(area)
	if ix := strings.LastIndex(ref, "!"); ix >= 0 {
		ref = ref[ix+1:]
	}

	match := a1Regex.FindStringSubmatch(ref)
	if len(match) < 2 || match[1] == "" {
		return 1
	}

	row, err := strconv.Atoi(match[1])
	if err != nil || row < 1 {
		return 1
	}

	return row
}

// Quote quotes a worksheet name for use in an A1 range if it contains anything other than letters, digits
// and underscores.
func Quote(tab string) string {
	if plainRegex.MatchString(tab) {
		return tab
	}

	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

package workout

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteTSV writes the header and records to a TSV file, one line per record in header column order.
func WriteTSV(f io.Writer, header []string, records []Record) error {
	if len(header) == 0 {
		return fmt.Errorf("Missing/invalid header row")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = clean(h)
	}

	if err := w.Write(columns); err != nil {
		return err
	}

	for _, record := range records {
		row := record.Fields(header)
		for i, v := range row {
			row[i] = clean(v)
		}

		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// ReadTSV reads a TSV file written by WriteTSV. The first line is the header and every following line is
// mapped to a record.
func ReadTSV(f io.Reader) ([]string, []Record, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("TSV file is empty")
	}

	header := make([]string, len(rows[0]))
	for i, v := range rows[0] {
		header[i] = clean(v)
	}

	seen := map[string]bool{}
	for _, h := range header {
		if seen[h] {
			return nil, nil, fmt.Errorf("Duplicate column name '%s'", h)
		}

		seen[h] = true
	}

	return header, MapRows(header, rows[1:]), nil
}

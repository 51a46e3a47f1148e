package workout

import (
	"reflect"
	"strings"
	"testing"
)

func TestWriteTSV(t *testing.T) {
	expected := "Date\tSection\tExercise\tNotes\n" +
		"2024-03-10\tWarmup\tSquat\t\n" +
		"2024-03-10\tStrength\tDeadlift\tfelt heavy\n"

	var f strings.Builder

	header := []string{"Date", "Section", "Exercise", "Notes"}
	records := []Record{
		Record{"Date": "2024-03-10", "Section": "Warmup", "Exercise": "Squat", "Notes": ""},
		Record{"Date": "2024-03-10", "Section": "Strength", "Exercise": " Deadlift ", "Notes": "felt heavy"},
	}

	if err := WriteTSV(&f, header, records); err != nil {
		t.Fatalf("Unexpected error returned from WriteTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}

func TestWriteTSVWithoutHeader(t *testing.T) {
	var f strings.Builder

	if err := WriteTSV(&f, nil, nil); err == nil {
		t.Errorf("Expected error for missing header, got %v", err)
	}
}

func TestReadTSV(t *testing.T) {
	tsv := "Date\tSection\tExercise\tNotes\n" +
		"2024-03-10\tWarmup\tSquat\n" +
		"2024-03-10\tStrength\tDeadlift\tfelt heavy\n"

	header, records, err := ReadTSV(strings.NewReader(tsv))
	if err != nil {
		t.Fatalf("Unexpected error returned from ReadTSV (%v)", err)
	}

	if expected := []string{"Date", "Section", "Exercise", "Notes"}; !reflect.DeepEqual(header, expected) {
		t.Errorf("Incorrect header\n   expected: %v\n   got:      %v\n", expected, header)
	}

	expected := []Record{
		Record{"Date": "2024-03-10", "Section": "Warmup", "Exercise": "Squat", "Notes": ""},
		Record{"Date": "2024-03-10", "Section": "Strength", "Exercise": "Deadlift", "Notes": "felt heavy"},
	}

	if !reflect.DeepEqual(records, expected) {
		t.Errorf("Incorrect records\n   expected: %v\n   got:      %v\n", expected, records)
	}
}

func TestReadTSVWithDuplicateColumn(t *testing.T) {
	if _, _, err := ReadTSV(strings.NewReader("Date\tNotes\tNotes\n")); err == nil {
		t.Errorf("Expected error for duplicate column")
	}

	if _, _, err := ReadTSV(strings.NewReader("")); err == nil {
		t.Errorf("Expected error for empty file")
	}
}

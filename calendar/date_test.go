package calendar

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		value    string
		expected Date
	}{
		{"2024-03-10", NewDate(2024, time.March, 10)},
		{" 2024-03-10 ", NewDate(2024, time.March, 10)},
		{"2024-03-10T18:45:00Z", NewDate(2024, time.March, 10)},
		{"2024-03-10 23:59:59", NewDate(2024, time.March, 10)},
	}

	for _, test := range tests {
		d, err := Parse(test.value)
		if err != nil {
			t.Fatalf("Unexpected error parsing '%v' (%v)", test.value, err)
		}

		if d != test.expected {
			t.Errorf("Incorrect date for '%v' - expected:%v, got:%v", test.value, test.expected, d)
		}
	}
}

func TestParseWithInvalidDate(t *testing.T) {
	for _, v := range []string{"", "10/03/2024", "2024-13-01", "tomorrow"} {
		if _, err := Parse(v); err == nil {
			t.Errorf("Expected error parsing '%v'", v)
		}
	}
}

func TestDateOfIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, time.March, 10, 0, 0, 1, 0, time.Local)
	evening := time.Date(2024, time.March, 10, 23, 59, 59, 0, time.Local)

	if DateOf(morning) != DateOf(evening) {
		t.Errorf("Expected same calendar day for %v and %v", morning, evening)
	}

	if DateOf(evening).String() != "2024-03-10" {
		t.Errorf("Incorrect date - expected:%v, got:%v", "2024-03-10", DateOf(evening))
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		date     Date
		offset   int
		expected Date
	}{
		{NewDate(2024, time.January, 31), 1, NewDate(2024, time.February, 1)},
		{NewDate(2024, time.March, 31), -1, NewDate(2024, time.February, 1)},
		{NewDate(2024, time.December, 15), 1, NewDate(2025, time.January, 1)},
		{NewDate(2024, time.January, 15), -13, NewDate(2022, time.December, 1)},
	}

	for _, test := range tests {
		if d := test.date.AddMonths(test.offset); d != test.expected {
			t.Errorf("%v + %v months - expected:%v, got:%v", test.date, test.offset, test.expected, d)
		}
	}
}

func TestAddDays(t *testing.T) {
	if d := NewDate(2024, time.February, 28).AddDays(1); d != NewDate(2024, time.February, 29) {
		t.Errorf("Incorrect date - expected:%v, got:%v", "2024-02-29", d)
	}

	if d := NewDate(2024, time.March, 1).AddDays(-1); d != NewDate(2024, time.February, 29) {
		t.Errorf("Incorrect date - expected:%v, got:%v", "2024-02-29", d)
	}
}

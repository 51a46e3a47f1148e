package calendar

import (
	"fmt"
	"strings"
	"time"
)

const ISO = "2006-01-02"

// Date is a calendar day with no time-of-day component. Two Dates are the same day iff they are ==.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()

	return Date{Year: y, Month: m, Day: d}
}

func Today() Date {
	return DateOf(time.Now())
}

// Parse accepts a YYYY-MM-DD date, optionally followed by a time of day which is ignored.
func Parse(s string) (Date, error) {
	v := strings.TrimSpace(s)
	if len(v) > 10 {
		v = v[:10]
	}

	t, err := time.Parse(ISO, v)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date '%v' - expected YYYY-MM-DD", s)
	}

	return DateOf(t), nil
}

func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return d
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddMonths returns the 1st of the month n months from d. Normalising to the 1st avoids overflow, e.g.
// Jan 31 + 1 month is Feb 1 and not Mar 3.
func (d Date) AddMonths(n int) Date {
	return DateOf(time.Date(d.Year, d.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

func (d Date) SameMonth(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

package commands

import (
	"github.com/fopina/xsibas-workouts/calendar"
	"github.com/fopina/xsibas-workouts/notes"
	"github.com/fopina/xsibas-workouts/workout"
)

// between returns the records logged from 'from' to 'to' inclusive. A zero date leaves that end of the
// range open. Records without a valid date are only included when the range is fully open.
func between(records []workout.Record, from, to calendar.Date) []workout.Record {
	list := []workout.Record{}

	for _, r := range records {
		if from.IsZero() && to.IsZero() {
			list = append(list, r)
			continue
		}

		d, err := calendar.Parse(r.Day())
		if err != nil {
			continue
		}

		if !from.IsZero() && d.Before(from) {
			continue
		}

		if !to.IsZero() && d.After(to) {
			continue
		}

		list = append(list, r)
	}

	return list
}

// index maps the note key of every record to its index in the record set.
func index(records []workout.Record) map[notes.Key]int {
	m := map[notes.Key]int{}

	for i, k := range notes.KeysOf(records) {
		m[k] = i
	}

	return m
}

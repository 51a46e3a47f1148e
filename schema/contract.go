package schema

import (
	"github.com/fopina/xsibas-workouts/workout"
)

const (
	EXERCISES   = "Exercises"
	WORKOUT_LOG = "WorkoutLog"
)

// Contract is the set of tabs a workout spreadsheet must have and, for each tab, the columns that must
// be present in its header row.
type Contract struct {
	tabs    []string
	headers map[string][]string
}

func NewContract(tabs []string, headers map[string][]string) Contract {
	c := Contract{
		tabs:    append([]string{}, tabs...),
		headers: map[string][]string{},
	}

	for k, v := range headers {
		c.headers[k] = append([]string{}, v...)
	}

	return c
}

func DefaultContract() Contract {
	return NewContract(
		[]string{EXERCISES, WORKOUT_LOG},
		map[string][]string{
			EXERCISES:   {workout.VIDEO_NAME, workout.VIDEO_LINK},
			WORKOUT_LOG: {workout.DATE, workout.SECTION, "Section Prescription", workout.EXERCISE, workout.NOTES},
		})
}

func (c Contract) Tabs() []string {
	return append([]string{}, c.tabs...)
}

func (c Contract) Headers(tab string) []string {
	return append([]string{}, c.headers[tab]...)
}

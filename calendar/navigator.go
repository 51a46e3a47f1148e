package calendar

import (
	"sync"
	"time"
)

type View int

const (
	WEEK View = iota
	MONTH
)

func (v View) String() string {
	switch v {
	case WEEK:
		return "week"
	case MONTH:
		return "month"
	default:
		return "unknown"
	}
}

type Selection struct {
	Selected Date
	View     View
	Anchor   Date
}

// Day is one cell of a week or month grid.
type Day struct {
	Date      Date
	HasRecord bool
	Selected  bool
	Today     bool
	InMonth   bool
}

// WeekOf returns the 7 days of the week containing d, starting on the Sunday on or before d.
func WeekOf(d Date) []Date {
	start := d.AddDays(-int(d.Weekday() - time.Sunday))
	week := make([]Date, 7)
	for i := range week {
		week[i] = start.AddDays(i)
	}

	return week
}

// MonthGrid returns the 42 days (6 full weeks) of a month calendar for the month containing anchor,
// starting on the Sunday on or before the 1st of the month.
func MonthGrid(anchor Date) []Date {
	first := anchor.FirstOfMonth()
	start := first.AddDays(-int(first.Weekday() - time.Sunday))
	grid := make([]Date, 42)
	for i := range grid {
		grid[i] = start.AddDays(i)
	}

	return grid
}

// Navigator holds the calendar selection state: the selected day, the week/month view mode and the month
// shown in month view.
type Navigator struct {
	selection Selection
	today     func() Date
	mu        sync.Mutex
}

func NewNavigator(today func() Date) *Navigator {
	if today == nil {
		today = Today
	}

	t := today()

	return &Navigator{
		selection: Selection{
			Selected: t,
			View:     WEEK,
			Anchor:   t.FirstOfMonth(),
		},
		today: today,
	}
}

func (n *Navigator) Selection() Selection {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.selection
}

// Select moves the selection to d without changing the view mode.
func (n *Navigator) Select(d Date) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.selection.Selected = d
}

// SelectFromMonth selects a day clicked in the month grid and switches to the week view of that day.
func (n *Navigator) SelectFromMonth(d Date) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.selection.Selected = d
	n.selection.View = WEEK
}

// ChangeMonth shifts the month shown in month view by offset months.
func (n *Navigator) ChangeMonth(offset int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.selection.Anchor = n.selection.Anchor.AddMonths(offset)
}

// ChangeWeek moves the selection by offset weeks, keeping the weekday.
func (n *Navigator) ChangeWeek(offset int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.selection.Selected = n.selection.Selected.AddDays(7 * offset)
}

func (n *Navigator) ToggleView() {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch n.selection.View {
	case WEEK:
		n.selection.View = MONTH
		n.selection.Anchor = n.selection.Selected.FirstOfMonth()

	default:
		n.selection.View = WEEK
	}
}

// GoToday selects today and resets the month view to the current month.
func (n *Navigator) GoToday() {
	n.mu.Lock()
	defer n.mu.Unlock()

	t := n.today()
	n.selection.Selected = t
	n.selection.Anchor = t.FirstOfMonth()
}

// Days returns the cells of the current view, flagged with has-record, selected, today and in-month.
func (n *Navigator) Days(has func(Date) bool) []Day {
	n.mu.Lock()
	selection := n.selection
	today := n.today()
	n.mu.Unlock()

	var dates []Date
	var month Date

	switch selection.View {
	case MONTH:
		dates = MonthGrid(selection.Anchor)
		month = selection.Anchor

	default:
		dates = WeekOf(selection.Selected)
		month = selection.Selected
	}

	days := make([]Day, len(dates))
	for i, d := range dates {
		days[i] = Day{
			Date:      d,
			HasRecord: has != nil && has(d),
			Selected:  d == selection.Selected,
			Today:     d == today,
			InMonth:   d.SameMonth(month),
		}
	}

	return days
}

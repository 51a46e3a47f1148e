package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fopina/xsibas-workouts/calendar"
	"github.com/fopina/xsibas-workouts/notes"
	"github.com/fopina/xsibas-workouts/store"
	"github.com/fopina/xsibas-workouts/workout"
)

var dayHeaders = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// RenderGrid renders a week (7 days) or month (42 days) calendar grid. Days with a workout are marked
// with a '*'. The cursor is only shown in the month grid.
func RenderGrid(days []calendar.Day, cursor calendar.Date) string {
	var sb strings.Builder

	for _, d := range dayHeaders {
		sb.WriteString(calDayHeaderStyle.Render(d))
	}
	sb.WriteString("\n")

	month := len(days) > 7

	for i, day := range days {
		label := fmt.Sprintf("%2d", day.Date.Day)
		if day.HasRecord {
			label = fmt.Sprintf("%2d*", day.Date.Day)
		}

		switch {
		case day.Selected:
			sb.WriteString(calSelectedStyle.Render(label))
		case month && day.Date == cursor:
			sb.WriteString(calCursorStyle.Render(label))
		case day.Today:
			sb.WriteString(calTodayStyle.Render(label))
		case month && !day.InMonth:
			sb.WriteString(calOutsideStyle.Render(label))
		case day.HasRecord:
			sb.WriteString(calHasRecordStyle.Render(label))
		default:
			sb.WriteString(calDayStyle.Render(label))
		}

		if (i+1)%7 == 0 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// RenderDay renders the workout of one day grouped by section. The entry at index cursor is highlighted
// when cursor is not negative.
func RenderDay(d calendar.Date, sections []store.Section, videos func(string) (string, bool), cursor int, width int) string {
	var sb strings.Builder

	sb.WriteString(dayHeaderStyle.Render(" " + d.Time().Format("Mon, Jan 2 2006")))
	sb.WriteString("\n")

	if len(sections) == 0 {
		sb.WriteString("   ")
		sb.WriteString(emptyStyle.Render("No workout logged"))
		sb.WriteString("\n")
		return sb.String()
	}

	ix := 0
	for _, section := range sections {
		name := section.Name
		if strings.TrimSpace(name) == "" {
			name = "(no section)"
		}

		sb.WriteString("   ")
		sb.WriteString(sectionStyle.Render(name))
		sb.WriteString("\n")

		for _, e := range section.Entries {
			line := e.Record.Exercise()
			if strings.TrimSpace(line) == "" {
				line = "(no exercise)"
			}

			if ix == cursor {
				line = entryCursor.Render(" " + line + " ")
			} else {
				line = entryStyle.Render(" " + line + " ")
			}

			if videos != nil {
				if link, ok := videos(e.Record.Exercise()); ok {
					line += " " + videoStyle.Render(link)
				}
			}

			sb.WriteString("     ")
			sb.WriteString(line)
			sb.WriteString("\n")

			if note := strings.TrimSpace(e.Record.Notes()); note != "" {
				for _, l := range strings.Split(note, "\n") {
					sb.WriteString("        ")
					sb.WriteString(noteStyle.Render(truncate(l, width-8)))
					sb.WriteString("\n")
				}
			}

			ix++
		}
	}

	return sb.String()
}

func renderHeader(title, sheetID string, selection calendar.Selection, width int) string {
	if title == "" {
		title = "Workout Log"
	}

	left := titleStyle.Render(" "+title) + " " + sheetStyle.Render(sheetID)
	right := navHintStyle.Render(fmt.Sprintf("[%v]", selection.View))

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if padding < 1 {
		padding = 1
	}

	month := selection.Selected
	if selection.View == calendar.MONTH {
		month = selection.Anchor
	}

	return left + strings.Repeat(" ", padding) + right + "\n\n" + calMonthStyle.Render(" "+month.Time().Format("January 2006"))
}

func renderEditor(key notes.Key, view string, saving bool, width int) string {
	title := fmt.Sprintf("Notes: %v / %v", key.Section, key.Exercise)
	hint := "[ctrl+s] save  [esc] cancel"
	if saving {
		hint = "saving..."
	}

	content := editorTitleStyle.Render(title) + "\n" + view + "\n" + navHintStyle.Render(hint)

	if width > 4 {
		return editorBoxStyle.Width(width - 4).Render(content)
	}

	return editorBoxStyle.Render(content)
}

func renderStatus(state store.State, err error, status string, failed bool) string {
	switch state {
	case store.LOADING:
		return statusStyle.Render("Loading workout log...")

	case store.ERROR:
		return errorStyle.Render(workout.Message(err))

	case store.IDLE:
		if status == "" {
			return statusStyle.Render("Not logged in")
		}
	}

	if failed {
		return errorStyle.Render(status)
	}

	return statusStyle.Render(status)
}

func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}

	runes := []rune(s)
	if len(runes) > width-1 && width > 1 {
		return string(runes[:width-1]) + "…"
	}

	return s
}

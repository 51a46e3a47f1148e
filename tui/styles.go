package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	textMuted  = lipgloss.Color("8")
	textBright = lipgloss.Color("15")
	primary    = lipgloss.Color("4")
	secondary  = lipgloss.Color("6")
	success    = lipgloss.Color("2")
	warning    = lipgloss.Color("3")
	danger     = lipgloss.Color("1")
)

// -- header and status --
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primary)
	sheetStyle   = lipgloss.NewStyle().Foreground(textMuted)
	navHintStyle = lipgloss.NewStyle().Foreground(textMuted)
	statusStyle  = lipgloss.NewStyle().Foreground(secondary)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(danger)
)

// -- calendar grid --
var (
	calDayHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(textMuted).Width(5).Align(lipgloss.Center)
	calDayStyle       = lipgloss.NewStyle().Width(5).Align(lipgloss.Center)
	calTodayStyle     = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Bold(true).Foreground(success)
	calSelectedStyle  = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Bold(true).Foreground(textBright).Background(primary)
	calCursorStyle    = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Bold(true).Underline(true).Foreground(warning)
	calHasRecordStyle = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Foreground(warning)
	calOutsideStyle   = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Foreground(textMuted)
	calMonthStyle     = lipgloss.NewStyle().Bold(true).Foreground(primary)
)

// -- day detail --
var (
	dayHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(secondary)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(warning)
	entryStyle     = lipgloss.NewStyle()
	entryCursor    = lipgloss.NewStyle().Bold(true).Foreground(textBright).Background(primary)
	noteStyle      = lipgloss.NewStyle().Foreground(textMuted).Italic(true)
	videoStyle     = lipgloss.NewStyle().Foreground(secondary).Underline(true)
	emptyStyle     = lipgloss.NewStyle().Foreground(textMuted).Italic(true)
)

// -- note editor --
var (
	editorBoxStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(primary).Padding(0, 1)
	editorTitleStyle = lipgloss.NewStyle().Foreground(secondary)
)

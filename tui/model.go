package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fopina/xsibas-workouts/calendar"
	"github.com/fopina/xsibas-workouts/notes"
	"github.com/fopina/xsibas-workouts/store"
	"github.com/fopina/xsibas-workouts/workout"
)

type focus int

const (
	CALENDAR focus = iota
	ENTRIES
	EDITOR
)

// Config wires the interactive browser to the workout log.
type Config struct {
	Context   context.Context
	Store     *store.Store
	Editor    *notes.Editor
	Navigator *calendar.Navigator
	SheetID   string

	// Token returns the access token for a load. It is called for every load so that an expired login
	// can be renewed with a reload.
	Token func(ctx context.Context) (string, error)

	// Init initialises the remote client. It runs concurrently with the first load, which waits for it.
	Init func(ctx context.Context) error
}

type loadedMsg struct {
	err error
}

type initMsg struct {
	err error
}

type savedMsg struct {
	key notes.Key
	err error
}

// Model is the bubbletea model for browsing the workout calendar and editing exercise notes.
type Model struct {
	ctx     context.Context
	store   *store.Store
	editor  *notes.Editor
	nav     *calendar.Navigator
	sheetID string
	token   func(ctx context.Context) (string, error)
	initf   func(ctx context.Context) error

	focus    focus
	cursor   calendar.Date
	current  int
	editing  notes.Key
	index    int
	textarea textarea.Model
	status   string
	failed   bool
	width    int
	height   int
}

func NewModel(cfg Config) Model {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	nav := cfg.Navigator
	if nav == nil {
		nav = calendar.NewNavigator(nil)
	}

	ta := textarea.New()
	ta.Placeholder = "How did it go?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(4)

	return Model{
		ctx:      ctx,
		store:    cfg.Store,
		editor:   cfg.Editor,
		nav:      nav,
		sheetID:  cfg.SheetID,
		token:    cfg.Token,
		initf:    cfg.Init,
		focus:    CALENDAR,
		cursor:   nav.Selection().Selected,
		textarea: ta,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.load()}

	if m.initf != nil {
		ctx, f := m.ctx, m.initf
		cmds = append(cmds, func() tea.Msg {
			return initMsg{err: f(ctx)}
		})
	}

	return tea.Batch(cmds...)
}

func (m Model) load() tea.Cmd {
	ctx, s, sheetID, token := m.ctx, m.store, m.sheetID, m.token

	return func() tea.Msg {
		input := store.Input{SheetID: sheetID}

		if token != nil {
			t, err := token(ctx)
			if err != nil {
				return loadedMsg{err: fmt.Errorf("%w (%v)", workout.ErrAuthExpired, err)}
			}

			input.Token = t
		}

		return loadedMsg{err: s.Load(ctx, input)}
	}
}

func (m Model) save(key notes.Key, index int, text string) tea.Cmd {
	ctx, editor := m.ctx, m.editor

	return func() tea.Msg {
		return savedMsg{
			key: key,
			err: editor.Save(ctx, key, index, text),
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(max(10, msg.Width-8))
		return m, nil

	case initMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("%w (%v)", workout.ErrRemoteUnavailable, msg.err))
		}
		return m, nil

	case loadedMsg:
		switch {
		case errors.Is(msg.err, store.ErrStale):
		case msg.err != nil:
			m.setError(msg.err)
		default:
			m.setStatus(fmt.Sprintf("%v workout records", len(m.store.Records())))
			m.clampEntry()
		}
		return m, nil

	case savedMsg:
		return m.saved(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case EDITOR:
			return m.updateEditor(msg)
		case ENTRIES:
			return m.updateEntries(msg)
		default:
			return m.updateCalendar(msg)
		}
	}

	if m.focus == EDITOR {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selection := m.nav.Selection()
	month := selection.View == calendar.MONTH

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "left":
		m.move(selection, -1)

	case "l", "right":
		m.move(selection, 1)

	case "k", "up":
		if month {
			m.move(selection, -7)
		} else {
			m.nav.ChangeWeek(-1)
		}

	case "j", "down":
		if month {
			m.move(selection, 7)
		} else {
			m.nav.ChangeWeek(1)
		}

	case "[":
		if month {
			m.nav.ChangeMonth(-1)
			m.cursor = m.nav.Selection().Anchor
		} else {
			m.nav.ChangeWeek(-1)
		}

	case "]":
		if month {
			m.nav.ChangeMonth(1)
			m.cursor = m.nav.Selection().Anchor
		} else {
			m.nav.ChangeWeek(1)
		}

	case "m":
		m.nav.ToggleView()
		m.cursor = m.nav.Selection().Selected

	case "t":
		m.nav.GoToday()
		m.cursor = m.nav.Selection().Selected

	case "enter":
		if month {
			m.nav.SelectFromMonth(m.cursor)
		} else if len(m.entries()) > 0 {
			m.focus = ENTRIES
		}

	case "tab":
		if len(m.entries()) > 0 {
			m.focus = ENTRIES
		}

	case "r":
		m.setStatus("")
		return m, m.load()
	}

	m.current = 0

	return m, nil
}

// move shifts the selected day in week view, or the cursor in month view, by n days. The month view
// follows the cursor into the adjacent month.
func (m *Model) move(selection calendar.Selection, n int) {
	if selection.View != calendar.MONTH {
		m.nav.Select(selection.Selected.AddDays(n))
		return
	}

	m.cursor = m.cursor.AddDays(n)
	if !m.cursor.SameMonth(selection.Anchor) {
		offset := (m.cursor.Year-selection.Anchor.Year)*12 + int(m.cursor.Month) - int(selection.Anchor.Month)
		m.nav.ChangeMonth(offset)
	}
}

func (m Model) updateEntries(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.entries()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "k", "up":
		if m.current > 0 {
			m.current--
		}

	case "j", "down":
		if m.current < len(entries)-1 {
			m.current++
		}

	case "esc", "tab":
		m.focus = CALENDAR

	case "e", "enter":
		if m.current < len(entries) {
			return m.beginEdit(entries[m.current])
		}

	case "r":
		m.setStatus("")
		return m, m.load()
	}

	return m, nil
}

func (m Model) beginEdit(e entry) (tea.Model, tea.Cmd) {
	text, ok := m.editor.Draft(e.key)
	if !ok {
		text = e.record.Notes()
		m.editor.BeginEdit(e.key, text)
	}

	m.editing = e.key
	m.index = e.index
	m.focus = EDITOR
	m.textarea.SetValue(text)
	cmd := m.textarea.Focus()

	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if m.editor.Saving(m.editing) {
			return m, nil
		}

		m.setStatus("Saving note...")
		return m, m.save(m.editing, m.index, m.textarea.Value())

	case "esc":
		m.editor.Cancel(m.editing)
		m.textarea.Blur()
		m.focus = ENTRIES
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.editor.UpdateDraft(m.editing, m.textarea.Value())

	return m, cmd
}

func (m Model) saved(msg savedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(msg.err)
		return m, nil
	}

	m.setStatus("Note saved")

	if m.focus == EDITOR && m.editing == msg.key {
		m.textarea.Blur()
		m.focus = ENTRIES
	}

	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder

	selection := m.nav.Selection()

	sb.WriteString(renderHeader(m.store.Title(), m.sheetID, selection, m.width))
	sb.WriteString("\n")
	sb.WriteString(RenderGrid(m.nav.Days(m.store.HasWorkout), m.cursor))
	sb.WriteString("\n")

	cursor := -1
	if m.focus != CALENDAR {
		cursor = m.current
	}

	sb.WriteString(RenderDay(selection.Selected, m.store.Sections(selection.Selected), m.store.VideoFor, cursor, m.width))

	if m.focus == EDITOR {
		sb.WriteString("\n")
		sb.WriteString(renderEditor(m.editing, m.textarea.View(), m.editor.Saving(m.editing), m.width))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(renderStatus(m.store.State(), m.store.Err(), m.status, m.failed))
	sb.WriteString("\n")
	sb.WriteString(navHintStyle.Render(m.hints()))

	return sb.String()
}

func (m Model) hints() string {
	switch m.focus {
	case EDITOR:
		return "[ctrl+s] save  [esc] cancel"
	case ENTRIES:
		return "[j/k] exercise  [e] edit note  [esc] calendar  [r] reload"
	default:
		return "[h/l] day  [k/j] week  [[/]] month  [m] week/month  [t] today  [enter] select  [r] reload  [q] quit"
	}
}

type entry struct {
	key    notes.Key
	index  int
	record workout.Record
}

// entries returns the records of the selected day in display order, i.e. grouped by section.
func (m Model) entries() []entry {
	sections := m.store.Sections(m.nav.Selection().Selected)

	records := []workout.Record{}
	indices := []int{}
	for _, s := range sections {
		for _, e := range s.Entries {
			records = append(records, e.Record)
			indices = append(indices, e.Index)
		}
	}

	keys := notes.KeysOf(records)
	list := make([]entry, len(records))
	for i := range records {
		list[i] = entry{
			key:    keys[i],
			index:  indices[i],
			record: records[i],
		}
	}

	return list
}

func (m *Model) clampEntry() {
	if n := len(m.entries()); m.current >= n {
		m.current = max(0, n-1)
	}

	if m.focus == ENTRIES && len(m.entries()) == 0 {
		m.focus = CALENDAR
	}
}

func (m *Model) setStatus(status string) {
	m.status = status
	m.failed = false
}

func (m *Model) setError(err error) {
	m.status = workout.Message(err)
	m.failed = true
}

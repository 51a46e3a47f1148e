package notes

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/fopina/xsibas-workouts/schema"
	"github.com/fopina/xsibas-workouts/workout"
)

// HEADER_ROW is the default sheet row (1-based) holding the workout log column names. Record n is on
// row header + 1 + n.
const HEADER_ROW = 1

// Key identifies a note being edited. No single column is unique in the workout log so a record is
// identified by its date, section and exercise plus its position in the day.
type Key struct {
	Date     string
	Section  string
	Exercise string
	Position int
}

func KeyOf(record workout.Record, position int) Key {
	return Key{
		Date:     record.Day(),
		Section:  record.Section(),
		Exercise: record.Exercise(),
		Position: position,
	}
}

// KeysOf returns the keys for a list of records, numbering records that share a date, section and exercise
// in list order.
func KeysOf(records []workout.Record) []Key {
	keys := make([]Key, len(records))
	seen := map[Key]int{}

	for i, r := range records {
		k := KeyOf(r, 0)
		keys[i] = KeyOf(r, seen[k])
		seen[k]++
	}

	return keys
}

func (k Key) String() string {
	return fmt.Sprintf("%v/%v/%v/%v", k.Date, k.Section, k.Exercise, k.Position)
}

// Store is the local record set updated once a note has been written to the spreadsheet. Len is the
// number of records in a loaded record set and 0 while nothing is loaded.
type Store interface {
	SheetID() string
	Len() int
	ApplyNoteLocally(index int, text string) error
}

// Writer writes to the workout log tab. Columns are 0-based, rows are 1-based sheet rows.
type Writer interface {
	HeaderAt(ctx context.Context, sheetID string, tab string, row int) ([]string, error)
	WriteCell(ctx context.Context, sheetID string, tab string, column int, row int, value string) error
}

type Option func(*Editor)

// WithLog sets the worksheet and header row of the workout log, e.g. from the configured log range.
// A blank tab or a row before row 1 keeps the default.
func WithLog(tab string, headerRow int) Option {
	return func(e *Editor) {
		if strings.TrimSpace(tab) != "" {
			e.tab = tab
		}

		if headerRow >= 1 {
			e.headerRow = headerRow
		}
	}
}

type Editor struct {
	store     Store
	writer    Writer
	tab       string
	headerRow int
	debug     func(format string, args ...any)

	mu     sync.Mutex
	drafts map[Key]string
	saving map[Key]bool
}

func NewEditor(store Store, writer Writer, debug func(format string, args ...any), options ...Option) *Editor {
	e := &Editor{
		store:     store,
		writer:    writer,
		tab:       schema.WORKOUT_LOG,
		headerRow: HEADER_ROW,
		debug:     debug,
		drafts:    map[Key]string{},
		saving:    map[Key]bool{},
	}

	for _, option := range options {
		option(e)
	}

	return e
}

func (e *Editor) BeginEdit(key Key, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.drafts[key] = text
}

func (e *Editor) UpdateDraft(key Key, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.drafts[key]; ok {
		e.drafts[key] = text
	}
}

func (e *Editor) Cancel(key Key) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.drafts, key)
}

func (e *Editor) Draft(key Key) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	text, ok := e.drafts[key]

	return text, ok
}

func (e *Editor) Editing(key Key) bool {
	_, ok := e.Draft(key)

	return ok
}

func (e *Editor) Saving(key Key) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.saving[key]
}

// Save writes the note to the Notes column of the record's row, creating the column if the log does
// not have one yet. A save only succeeds once the note is also applied to the local record set, after
// which the draft is discarded. On failure the draft is kept with the unsaved text. A second save for the
// same key while one is in flight is rejected with ErrSaveInProgress.
func (e *Editor) Save(ctx context.Context, key Key, index int, text string) error {
	e.mu.Lock()
	if e.saving[key] {
		e.mu.Unlock()
		return workout.ErrSaveInProgress
	}

	e.saving[key] = true
	e.drafts[key] = text
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		delete(e.saving, key)
		e.mu.Unlock()
	}()

	if err := e.write(ctx, index, text); err != nil {
		e.debugf("save %v: %v", key, err)
		return fmt.Errorf("%w (%w)", workout.ErrWriteFailed, err)
	}

	if err := e.store.ApplyNoteLocally(index, text); err != nil {
		e.debugf("save %v: note written but not applied locally (%v)", key, err)
		return fmt.Errorf("%w (not applied locally: %w)", workout.ErrWriteFailed, err)
	}

	e.mu.Lock()
	delete(e.drafts, key)
	e.mu.Unlock()

	return nil
}

func (e *Editor) write(ctx context.Context, index int, text string) error {
	if n := e.store.Len(); index < 0 || index >= n {
		return fmt.Errorf("invalid record index %v (%v records loaded)", index, n)
	}

	sheetID := e.store.SheetID()
	if sheetID == "" {
		return fmt.Errorf("no spreadsheet selected")
	}

	header, err := e.writer.HeaderAt(ctx, sheetID, e.tab, e.headerRow)
	if err != nil {
		return err
	}

	column := slices.IndexFunc(header, func(h string) bool {
		return strings.TrimSpace(h) == workout.NOTES
	})

	if column < 0 {
		column = len(header)
		if err := e.writer.WriteCell(ctx, sheetID, e.tab, column, e.headerRow, workout.NOTES); err != nil {
			return err
		}
	}

	return e.writer.WriteCell(ctx, sheetID, e.tab, column, e.headerRow+1+index, text)
}

func (e *Editor) debugf(format string, args ...any) {
	if e.debug != nil {
		e.debug(format, args...)
	}
}

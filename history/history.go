package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Entry records when a spreadsheet was first and last opened.
type Entry struct {
	ID         string    `yaml:"-"`
	Title      string    `yaml:"title,omitempty"`
	FirstAdded time.Time `yaml:"first-added"`
	LastOpened time.Time `yaml:"last-opened"`
}

// History is the list of recently opened spreadsheets, keyed by spreadsheet ID and persisted as a YAML file.
type History struct {
	file    string
	mu      sync.Mutex
	entries map[string]Entry
}

// Open loads the history file. A missing file is an empty history. An unreadable file also yields an empty
// history, along with the error so that the caller can report it.
func Open(file string) (*History, error) {
	h := History{
		file:    file,
		entries: map[string]Entry{},
	}

	bytes, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return &h, nil
	} else if err != nil {
		return &h, err
	}

	entries := map[string]Entry{}
	if err := yaml.Unmarshal(bytes, &entries); err != nil {
		return &h, fmt.Errorf("invalid history file %v (%v)", file, err)
	}

	for id, e := range entries {
		if id = strings.TrimSpace(id); id != "" {
			e.ID = id
			h.entries[id] = e
		}
	}

	return &h, nil
}

func (h *History) File() string {
	return h.file
}

// Touch marks a spreadsheet as opened, adding it to the history if it is not already there.
func (h *History) Touch(id string, now time.Time) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.entries[id]
	if !ok {
		e = Entry{ID: id, FirstAdded: now}
	}

	e.LastOpened = now
	h.entries[id] = e
}

// SetTitle updates the title of a spreadsheet already in the history.
func (h *History) SetTitle(id, title string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if e, ok := h.entries[id]; ok {
		e.Title = strings.TrimSpace(title)
		h.entries[id] = e
	}
}

func (h *History) Remove(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.entries[id]
	delete(h.entries, id)

	return ok
}

func (h *History) Get(id string) (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.entries[id]

	return e, ok
}

// List returns the history, most recently opened first.
func (h *History) List() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := make([]Entry, 0, len(h.entries))
	for _, e := range h.entries {
		list = append(list, e)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].LastOpened.Equal(list[j].LastOpened) {
			return list[i].ID < list[j].ID
		}

		return list[i].LastOpened.After(list[j].LastOpened)
	})

	return list
}

// Save writes the history file, replacing it atomically.
func (h *History) Save() error {
	h.mu.Lock()
	bytes, err := yaml.Marshal(h.entries)
	h.mu.Unlock()

	if err != nil {
		return err
	}

	dir := filepath.Dir(h.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".history")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(bytes); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), h.file)
}

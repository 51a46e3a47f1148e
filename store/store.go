package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/fopina/xsibas-workouts/calendar"
	"github.com/fopina/xsibas-workouts/schema"
	"github.com/fopina/xsibas-workouts/workout"
)

const (
	LOOKUP_RANGE  = "Exercises!A:D"
	LOG_RANGE     = "WorkoutLog!A:Z"
	READY_TIMEOUT = 10 * time.Second
)

// ErrStale is returned by Load when the result was discarded because a newer load was started while
// it was in flight.
var ErrStale = errors.New("stale result discarded")

// Remote is the spreadsheet backend used to fetch the workout log. The remote client is created once
// per session and shared by every load.
type Remote interface {
	Ready(ctx context.Context) error
	Bind(token string) error
	Load(ctx context.Context) error
	Title(ctx context.Context, sheetID string) (string, error)
	Values(ctx context.Context, sheetID string, area string) ([][]string, error)
}

// Input identifies a load: the access token and the spreadsheet it is loaded from.
type Input struct {
	Token   string
	SheetID string
}

// Entry is a record together with its index in the record set.
type Entry struct {
	Index  int
	Record workout.Record
}

type Section struct {
	Name    string
	Entries []Entry
}

type Snapshot struct {
	Input      Input
	State      State
	Err        error
	Title      string
	Header     []string
	Records    []workout.Record
	Videos     workout.VideoIndex
	Generation uint64
}

type Store struct {
	remote       Remote
	validator    *schema.Validator
	source       schema.Source
	lookupRange  string
	logRange     string
	readyTimeout time.Duration
	onTitle      func(sheetID, title string)
	debug        func(format string, args ...any)

	mu         sync.RWMutex
	generation uint64
	input      Input
	state      State
	err        error
	title      string
	header     []string
	records    []workout.Record
	videos     workout.VideoIndex
	days       map[calendar.Date][]int
}

type Option func(*Store)

func WithRanges(lookup, log string) Option {
	return func(s *Store) {
		if lookup != "" {
			s.lookupRange = lookup
		}

		if log != "" {
			s.logRange = log
		}
	}
}

// WithReadyTimeout bounds the wait for the remote client to become ready.
func WithReadyTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		if timeout > 0 {
			s.readyTimeout = timeout
		}
	}
}

// WithValidator checks the spreadsheet structure before any data is fetched.
func WithValidator(validator *schema.Validator, source schema.Source) Option {
	return func(s *Store) {
		s.validator = validator
		s.source = source
	}
}

// WithTitleCallback is invoked with the spreadsheet title whenever a load learns it.
func WithTitleCallback(f func(sheetID, title string)) Option {
	return func(s *Store) {
		s.onTitle = f
	}
}

func WithDebug(f func(format string, args ...any)) Option {
	return func(s *Store) {
		s.debug = f
	}
}

func New(remote Remote, options ...Option) *Store {
	s := Store{
		remote:       remote,
		lookupRange:  LOOKUP_RANGE,
		logRange:     LOG_RANGE,
		readyTimeout: READY_TIMEOUT,
		state:        IDLE,
		videos:       workout.VideoIndex{},
		days:         map[calendar.Date][]int{},
	}

	for _, option := range options {
		option(&s)
	}

	return &s
}

type fetched struct {
	title   string
	header  []string
	records []workout.Record
	videos  workout.VideoIndex
}

// Load fetches, validates and maps the workout log for the input. Every load supersedes any load still
// in flight: a result that arrives for an older load is discarded and ErrStale returned. A load with
// no token or spreadsheet resets the store to IDLE.
func (s *Store) Load(ctx context.Context, input Input) error {
	generation, ok := s.begin(input)
	if !ok {
		return nil
	}

	result, err := s.fetch(ctx, input)

	return s.finish(generation, result, err)
}

func (s *Store) begin(input Input) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.input = input
	s.err = nil
	s.replace(&fetched{videos: workout.VideoIndex{}})

	if input.Token == "" || input.SheetID == "" {
		s.state = IDLE
		return s.generation, false
	}

	s.state = LOADING
	s.debugf("load %v: LOADING %v", s.generation, input.SheetID)

	return s.generation, true
}

func (s *Store) finish(generation uint64, result *fetched, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		s.debugf("load %v: discarded (current load is %v)", generation, s.generation)
		return ErrStale
	}

	if err != nil {
		s.state = ERROR
		s.err = err
		s.replace(&fetched{videos: workout.VideoIndex{}})
		s.debugf("load %v: ERROR %v", generation, err)

		return err
	}

	s.state = READY
	s.replace(result)
	s.debugf("load %v: READY %v records", generation, len(result.records))

	return nil
}

func (s *Store) fetch(ctx context.Context, input Input) (*fetched, error) {
	// ... wait for remote client
	rctx, cancel := context.WithTimeout(ctx, s.readyTimeout)
	defer cancel()

	if err := s.remote.Ready(rctx); err != nil {
		return nil, fmt.Errorf("%w (client not ready: %v)", workout.ErrRemoteUnavailable, err)
	}

	// ... bind token and load API
	if err := s.remote.Bind(input.Token); err != nil {
		return nil, fmt.Errorf("%w (%v)", workout.ErrRemoteUnavailable, err)
	}

	if err := s.remote.Load(ctx); err != nil {
		if workout.AuthExpired(err) {
			return nil, fmt.Errorf("%w (%v)", workout.ErrAuthExpired, err)
		}

		return nil, fmt.Errorf("%w (%v)", workout.ErrRemoteUnavailable, err)
	}

	// ... validate
	if s.validator != nil && s.source != nil {
		if err := s.validator.Validate(ctx, s.source, input.SheetID).Err(); err != nil {
			return nil, err
		}
	}

	result := fetched{
		videos: workout.VideoIndex{},
	}

	// ... title (best effort)
	if title, err := s.remote.Title(ctx, input.SheetID); err != nil {
		s.debugf("could not retrieve spreadsheet title (%v)", err)
	} else if title != "" {
		result.title = title
		if s.onTitle != nil {
			s.onTitle(input.SheetID, title)
		}
	}

	// ... exercise videos
	lookup, err := s.remote.Values(ctx, input.SheetID, s.lookupRange)
	if err != nil {
		return nil, classify(err)
	}

	if len(lookup) > 0 {
		result.videos = workout.MapVideoIndex(lookup[0], lookup[1:], workout.VIDEO_NAME, workout.VIDEO_LINK)
	}

	// ... workout log
	rows, err := s.remote.Values(ctx, input.SheetID, s.logRange)
	if err != nil {
		return nil, classify(err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w (%v)", workout.ErrNoData, s.logRange)
	}

	result.header = append([]string{}, rows[0]...)
	result.records = workout.MapRows(result.header, rows[1:])

	return &result, nil
}

// replace swaps in a complete record set and rebuilds the date index. Must be called with the lock held.
func (s *Store) replace(result *fetched) {
	s.title = result.title
	s.header = result.header
	s.records = result.records
	s.videos = result.videos
	s.days = map[calendar.Date][]int{}

	for i, r := range s.records {
		if d, err := calendar.Parse(r.Day()); err == nil {
			s.days[d] = append(s.days[d], i)
		}
	}
}

// ApplyNoteLocally replaces the Notes field of one record in place. It is the local echo of a confirmed
// remote write. If the log had no Notes column it is added to every record.
func (s *Store) ApplyNoteLocally(index int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != READY {
		return fmt.Errorf("no workout log loaded")
	}

	if index < 0 || index >= len(s.records) {
		return fmt.Errorf("invalid record index %v", index)
	}

	if !slices.Contains(s.header, workout.NOTES) {
		s.header = append(s.header, workout.NOTES)
		for _, r := range s.records {
			r[workout.NOTES] = ""
		}
	}

	s.records[index][workout.NOTES] = text

	return nil
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}

func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.generation
}

func (s *Store) SheetID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.input.SheetID
}

// Len returns the number of records in the loaded record set. It is 0 unless the store is READY.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state != READY {
		return 0
	}

	return len(s.records)
}

func (s *Store) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.title
}

func (s *Store) Header() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string{}, s.header...)
}

func (s *Store) Records() []workout.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]workout.Record, len(s.records))
	for i, r := range s.records {
		records[i] = maps.Clone(r)
	}

	return records
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]workout.Record, len(s.records))
	for i, r := range s.records {
		records[i] = maps.Clone(r)
	}

	return Snapshot{
		Input:      s.input,
		State:      s.state,
		Err:        s.err,
		Title:      s.title,
		Header:     append([]string{}, s.header...),
		Records:    records,
		Videos:     maps.Clone(s.videos),
		Generation: s.generation,
	}
}

func (s *Store) HasWorkout(d calendar.Date) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.days[d]) > 0
}

// RecordsOn returns the records logged on a day, in log order.
func (s *Store) RecordsOn(d calendar.Date) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []Entry{}
	for _, ix := range s.days[d] {
		entries = append(entries, Entry{
			Index:  ix,
			Record: maps.Clone(s.records[ix]),
		})
	}

	return entries
}

// Sections groups the records logged on a day by section, in the order the sections first appear.
func (s *Store) Sections(d calendar.Date) []Section {
	sections := []Section{}
	index := map[string]int{}

	for _, e := range s.RecordsOn(d) {
		name := e.Record.Section()
		ix, ok := index[name]
		if !ok {
			ix = len(sections)
			index[name] = ix
			sections = append(sections, Section{Name: name})
		}

		sections[ix].Entries = append(sections[ix].Entries, e)
	}

	return sections
}

func (s *Store) VideoFor(exercise string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.videos.Lookup(exercise)
}

func (s *Store) SearchVideos(query string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.videos.Search(query)
}

func classify(err error) error {
	if workout.AuthExpired(err) {
		return fmt.Errorf("%w (%v)", workout.ErrAuthExpired, err)
	}

	return fmt.Errorf("%w (%w)", workout.ErrFetchFailed, err)
}

func (s *Store) debugf(format string, args ...any) {
	if s.debug != nil {
		s.debug(format, args...)
	}
}

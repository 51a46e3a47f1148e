package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/fopina/xsibas-workouts/calendar"
	"github.com/fopina/xsibas-workouts/schema"
	"github.com/fopina/xsibas-workouts/workout"
)

type sheet struct {
	title  string
	tabs   []string
	lookup [][]string
	log    [][]string
}

type remote struct {
	sync.Mutex
	sheets   map[string]sheet
	gates    map[string]chan struct{}
	started  map[string]chan struct{}
	ready    chan struct{}
	errBind  error
	errLoad  error
	errTitle error
	errRange map[string]error
	token    string
}

func newRemote(sheets map[string]sheet) *remote {
	ready := make(chan struct{})
	close(ready)

	return &remote{
		sheets:   sheets,
		gates:    map[string]chan struct{}{},
		started:  map[string]chan struct{}{},
		ready:    ready,
		errRange: map[string]error{},
	}
}

func (r *remote) Ready(ctx context.Context) error {
	select {
	case <-r.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *remote) Bind(token string) error {
	r.Lock()
	defer r.Unlock()

	r.token = token

	return r.errBind
}

func (r *remote) Load(ctx context.Context) error {
	return r.errLoad
}

func (r *remote) Title(ctx context.Context, sheetID string) (string, error) {
	if r.errTitle != nil {
		return "", r.errTitle
	}

	return r.sheets[sheetID].title, nil
}

func (r *remote) Values(ctx context.Context, sheetID string, area string) ([][]string, error) {
	r.Lock()
	gate := r.gates[sheetID]
	started := r.started[sheetID]
	err := r.errRange[area]
	r.Unlock()

	if area == LOG_RANGE {
		if started != nil {
			close(started)
		}

		if gate != nil {
			<-gate
		}
	}

	if err != nil {
		return nil, err
	}

	switch area {
	case LOOKUP_RANGE:
		return r.sheets[sheetID].lookup, nil
	case LOG_RANGE:
		return r.sheets[sheetID].log, nil
	default:
		return nil, fmt.Errorf("invalid range %v", area)
	}
}

func (r *remote) Tabs(ctx context.Context, sheetID string) ([]string, error) {
	return r.sheets[sheetID].tabs, nil
}

func (r *remote) Header(ctx context.Context, sheetID string, tab string) ([]string, error) {
	switch tab {
	case schema.EXERCISES:
		return r.sheets[sheetID].lookup[0], nil
	default:
		return r.sheets[sheetID].log[0], nil
	}
}

var lookupRows = [][]string{
	[]string{"Exercise", "Muscle", "VideoLink", "Equipment"},
	[]string{"Squat", "Legs", "https://youtu.be/squat", "Barbell"},
	[]string{"Plank", "Core", ""},
}

var logRows = [][]string{
	[]string{"Date", "Section", "Section Prescription", "Exercise", "Notes"},
	[]string{"2024-03-10", "Warmup", "2 rounds", "Squat"},
	[]string{"2024-03-10", "Strength", "5x5", "Deadlift", "heavy"},
	[]string{"2024-03-12 07:30", "Warmup", "2 rounds", "Plank", ""},
	[]string{"2024-03-10", "Warmup", "2 rounds", "Lunge"},
}

func TestLoad(t *testing.T) {
	r := newRemote(map[string]sheet{
		"sheetA": {title: "Spring block", lookup: lookupRows, log: logRows},
	})

	titles := map[string]string{}
	s := New(r, WithTitleCallback(func(id, title string) { titles[id] = title }))

	if s.State() != IDLE {
		t.Errorf("Incorrect initial state - expected:%v, got:%v", IDLE, s.State())
	}

	if err := s.Load(context.Background(), Input{Token: "tokenA", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	snapshot := s.Snapshot()

	if snapshot.State != READY {
		t.Errorf("Incorrect state - expected:%v, got:%v", READY, snapshot.State)
	}

	if len(snapshot.Records) != 4 {
		t.Errorf("Incorrect number of records - expected:%v, got:%v", 4, len(snapshot.Records))
	}

	if !reflect.DeepEqual(snapshot.Header, logRows[0]) {
		t.Errorf("Incorrect header\n   expected: %v\n   got:      %v\n", logRows[0], snapshot.Header)
	}

	if snapshot.Title != "Spring block" {
		t.Errorf("Incorrect title - expected:%v, got:%v", "Spring block", snapshot.Title)
	}

	if titles["sheetA"] != "Spring block" {
		t.Errorf("Title callback not invoked - expected:%v, got:%v", "Spring block", titles)
	}

	if r.token != "tokenA" {
		t.Errorf("Token not bound - expected:%v, got:%v", "tokenA", r.token)
	}
}

func TestRecordsOn(t *testing.T) {
	expected := workout.Record{"Date": "2024-03-10", "Section": "Warmup", "Exercise": "Squat"}

	r := newRemote(map[string]sheet{
		"sheetA": {
			lookup: lookupRows,
			log: [][]string{
				[]string{"Date", "Section", "Exercise"},
				[]string{"2024-03-10", "Warmup", "Squat"},
			},
		},
	})

	s := New(r)
	if err := s.Load(context.Background(), Input{Token: "tokenA", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	entries := s.RecordsOn(calendar.MustParse("2024-03-10"))
	if len(entries) != 1 {
		t.Fatalf("Incorrect number of records - expected:%v, got:%v", 1, len(entries))
	}

	if !reflect.DeepEqual(entries[0].Record, expected) {
		t.Errorf("Incorrect record\n   expected: %v\n   got:      %v\n", expected, entries[0].Record)
	}

	if entries := s.RecordsOn(calendar.MustParse("2024-03-11")); len(entries) != 0 {
		t.Errorf("Expected no records for 2024-03-11, got %v", entries)
	}
}

func TestRecordsOnPreservesOrder(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})

	s := New(r)
	if err := s.Load(context.Background(), Input{Token: "tokenA", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	entries := s.RecordsOn(calendar.MustParse("2024-03-10"))

	exercises := []string{}
	indices := []int{}
	for _, e := range entries {
		exercises = append(exercises, e.Record.Exercise())
		indices = append(indices, e.Index)
	}

	if !reflect.DeepEqual(exercises, []string{"Squat", "Deadlift", "Lunge"}) {
		t.Errorf("Incorrect records - expected:%v, got:%v", []string{"Squat", "Deadlift", "Lunge"}, exercises)
	}

	if !reflect.DeepEqual(indices, []int{0, 1, 3}) {
		t.Errorf("Incorrect record indices - expected:%v, got:%v", []int{0, 1, 3}, indices)
	}
}

func TestHasWorkout(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})

	s := New(r)
	if err := s.Load(context.Background(), Input{Token: "tokenA", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	evening := time.Date(2024, time.March, 10, 21, 15, 0, 0, time.Local)

	if !s.HasWorkout(calendar.DateOf(evening)) {
		t.Errorf("Expected workout on %v", evening)
	}

	if !s.HasWorkout(calendar.MustParse("2024-03-12")) {
		t.Errorf("Expected workout on 2024-03-12")
	}

	if s.HasWorkout(calendar.MustParse("2024-03-11")) {
		t.Errorf("Expected no workout on 2024-03-11")
	}
}

func TestSections(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})

	s := New(r)
	if err := s.Load(context.Background(), Input{Token: "tokenA", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	sections := s.Sections(calendar.MustParse("2024-03-10"))
	if len(sections) != 2 {
		t.Fatalf("Incorrect number of sections - expected:%v, got:%v", 2, len(sections))
	}

	if sections[0].Name != "Warmup" || len(sections[0].Entries) != 2 {
		t.Errorf("Incorrect section - expected:Warmup/2, got:%v/%v", sections[0].Name, len(sections[0].Entries))
	}

	if sections[1].Name != "Strength" || len(sections[1].Entries) != 1 {
		t.Errorf("Incorrect section - expected:Strength/1, got:%v/%v", sections[1].Name, len(sections[1].Entries))
	}
}

func TestVideoFor(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})

	s := New(r)
	if err := s.Load(context.Background(), Input{Token: "tokenA", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	if v, ok := s.VideoFor("Squat"); !ok || v != "https://youtu.be/squat" {
		t.Errorf("Incorrect video - expected:%v, got:%v", "https://youtu.be/squat", v)
	}

	if v, ok := s.VideoFor("Plank"); ok {
		t.Errorf("Expected no video for 'Plank', got %v", v)
	}
}

func TestLen(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})
	s := New(r)

	if n := s.Len(); n != 0 {
		t.Errorf("Incorrect record count before load - expected:%v, got:%v", 0, n)
	}

	if err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	if n := s.Len(); n != 4 {
		t.Errorf("Incorrect record count - expected:%v, got:%v", 4, n)
	}

	r.errRange[LOOKUP_RANGE] = fmt.Errorf("googleapi: Error 400: Unable to parse range")
	if err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"}); err == nil {
		t.Fatalf("Expected error reloading workout log")
	}

	if n := s.Len(); n != 0 {
		t.Errorf("Incorrect record count after failed load - expected:%v, got:%v", 0, n)
	}
}

func TestLoadDiscardsStaleResult(t *testing.T) {
	r := newRemote(map[string]sheet{
		"sheetA": {title: "A", lookup: lookupRows, log: logRows},
		"sheetB": {
			title:  "B",
			lookup: lookupRows,
			log: [][]string{
				[]string{"Date", "Section", "Exercise"},
				[]string{"2024-04-01", "Cooldown", "Stretch"},
			},
		},
	})

	gate := make(chan struct{})
	started := make(chan struct{})
	r.gates["sheetA"] = gate
	r.started["sheetA"] = started

	s := New(r)

	errA := make(chan error, 1)
	go func() {
		errA <- s.Load(context.Background(), Input{Token: "tokenA", SheetID: "sheetA"})
	}()

	<-started

	if s.State() != LOADING {
		t.Errorf("Incorrect state - expected:%v, got:%v", LOADING, s.State())
	}

	if err := s.Load(context.Background(), Input{Token: "tokenB", SheetID: "sheetB"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	close(gate)

	if err := <-errA; !errors.Is(err, ErrStale) {
		t.Errorf("Expected ErrStale for superseded load, got %v", err)
	}

	snapshot := s.Snapshot()
	if snapshot.State != READY {
		t.Errorf("Incorrect state - expected:%v, got:%v", READY, snapshot.State)
	}

	if snapshot.Input != (Input{Token: "tokenB", SheetID: "sheetB"}) {
		t.Errorf("Incorrect input - expected:%v, got:%v", "tokenB/sheetB", snapshot.Input)
	}

	if snapshot.Title != "B" || len(snapshot.Records) != 1 || snapshot.Records[0].Exercise() != "Stretch" {
		t.Errorf("Stale load overwrote newer result: %v %v", snapshot.Title, snapshot.Records)
	}
}

func TestLoadWithNoData(t *testing.T) {
	r := newRemote(map[string]sheet{
		"sheetA": {lookup: lookupRows, log: [][]string{[]string{"Date", "Section", "Exercise"}}},
		"sheetB": {lookup: lookupRows, log: [][]string{}},
	})

	s := New(r)

	for _, id := range []string{"sheetA", "sheetB"} {
		err := s.Load(context.Background(), Input{Token: "token", SheetID: id})
		if !errors.Is(err, workout.ErrNoData) {
			t.Errorf("%v: expected ErrNoData, got %v", id, err)
		}

		if s.State() != ERROR {
			t.Errorf("%v: incorrect state - expected:%v, got:%v", id, ERROR, s.State())
		}

		if !errors.Is(s.Err(), workout.ErrNoData) {
			t.Errorf("%v: expected ErrNoData, got %v", id, s.Err())
		}
	}
}

func TestLoadWithEmptyInput(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})

	s := New(r)
	if err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	if err := s.Load(context.Background(), Input{Token: "", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if s.State() != IDLE {
		t.Errorf("Incorrect state - expected:%v, got:%v", IDLE, s.State())
	}

	if len(s.Records()) != 0 {
		t.Errorf("Expected no records, got %v", s.Records())
	}
}

func TestLoadWithRemoteNotReady(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})
	r.ready = make(chan struct{})

	s := New(r, WithReadyTimeout(10*time.Millisecond))

	err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"})
	if !errors.Is(err, workout.ErrRemoteUnavailable) {
		t.Errorf("Expected ErrRemoteUnavailable, got %v", err)
	}

	if s.State() != ERROR {
		t.Errorf("Incorrect state - expected:%v, got:%v", ERROR, s.State())
	}
}

func TestLoadWithAPILoadError(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})
	r.errLoad = fmt.Errorf("blocked by client")

	s := New(r)

	if err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"}); !errors.Is(err, workout.ErrRemoteUnavailable) {
		t.Errorf("Expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestLoadWithExpiredLogin(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})
	r.errRange[LOG_RANGE] = fmt.Errorf("googleapi: Error 401: Invalid Credentials, authError")

	s := New(r)

	err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"})
	if !errors.Is(err, workout.ErrAuthExpired) {
		t.Errorf("Expected ErrAuthExpired, got %v", err)
	}

	if workout.Message(err) != workout.LOGIN_EXPIRED {
		t.Errorf("Incorrect message - expected:%v, got:%v", workout.LOGIN_EXPIRED, workout.Message(err))
	}
}

func TestLoadWithFetchError(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})
	r.errRange[LOOKUP_RANGE] = fmt.Errorf("googleapi: Error 400: Unable to parse range")

	s := New(r)

	if err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"}); !errors.Is(err, workout.ErrFetchFailed) {
		t.Errorf("Expected ErrFetchFailed, got %v", err)
	}
}

func TestLoadWithTitleError(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})
	r.errTitle = fmt.Errorf("permission denied")

	s := New(r)

	if err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"}); err != nil {
		t.Errorf("Unexpected error (%v)", err)
	}

	if s.State() != READY {
		t.Errorf("Incorrect state - expected:%v, got:%v", READY, s.State())
	}
}

func TestLoadWithValidator(t *testing.T) {
	r := newRemote(map[string]sheet{
		"sheetA": {tabs: []string{"WorkoutLog"}, lookup: lookupRows, log: logRows},
	})

	s := New(r, WithValidator(schema.NewValidator(schema.DefaultContract()), r))

	err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"})
	if !errors.Is(err, workout.ErrSchemaInvalid) {
		t.Fatalf("Expected ErrSchemaInvalid, got %v", err)
	}

	var schemaErr *workout.SchemaError
	if !errors.As(err, &schemaErr) || len(schemaErr.Errors) != 1 {
		t.Errorf("Incorrect schema errors: %v", err)
	}
}

func TestApplyNoteLocally(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})

	s := New(r)
	if err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	if err := s.ApplyNoteLocally(2, "shaky"); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	records := s.Records()
	if records[2].Notes() != "shaky" {
		t.Errorf("Incorrect notes - expected:%v, got:%v", "shaky", records[2].Notes())
	}

	if records[1].Notes() != "heavy" {
		t.Errorf("Unexpected change to record 1 notes - expected:%v, got:%v", "heavy", records[1].Notes())
	}

	if err := s.ApplyNoteLocally(4, "x"); err == nil {
		t.Errorf("Expected error for invalid record index")
	}
}

func TestApplyNoteLocallyWithoutNotesColumn(t *testing.T) {
	r := newRemote(map[string]sheet{
		"sheetA": {
			lookup: lookupRows,
			log: [][]string{
				[]string{"Date", "Section", "Exercise"},
				[]string{"2024-03-10", "Warmup", "Squat"},
				[]string{"2024-03-11", "Warmup", "Lunge"},
			},
		},
	})

	s := New(r)
	if err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	if err := s.ApplyNoteLocally(0, "easy"); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if header := s.Header(); !reflect.DeepEqual(header, []string{"Date", "Section", "Exercise", "Notes"}) {
		t.Errorf("Incorrect header - got %v", header)
	}

	for i, r := range s.Records() {
		if len(r) != 4 {
			t.Errorf("record %v: incorrect number of keys - expected:%v, got:%v", i, 4, len(r))
		}
	}
}

func TestRecordsAreCopies(t *testing.T) {
	r := newRemote(map[string]sheet{"sheetA": {lookup: lookupRows, log: logRows}})

	s := New(r)
	if err := s.Load(context.Background(), Input{Token: "token", SheetID: "sheetA"}); err != nil {
		t.Fatalf("Unexpected error loading workout log (%v)", err)
	}

	s.Records()[0]["Notes"] = "modified"
	s.RecordsOn(calendar.MustParse("2024-03-10"))[0].Record["Notes"] = "modified"

	if v := s.Records()[0].Notes(); v != "" {
		t.Errorf("Store record modified through copy: %v", v)
	}
}

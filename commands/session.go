package commands

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/fopina/xsibas-workouts/config"
	"github.com/fopina/xsibas-workouts/google"
	"github.com/fopina/xsibas-workouts/history"
	"github.com/fopina/xsibas-workouts/notes"
	"github.com/fopina/xsibas-workouts/schema"
	"github.com/fopina/xsibas-workouts/store"
	"github.com/fopina/xsibas-workouts/workout"
)

// session wires the Google client, workout store and note editor for a single spreadsheet.
type session struct {
	cfg     *config.Config
	sheetID string
	tokens  oauth2.TokenSource
	client  *google.Client
	history *history.History
	store   *store.Store
	editor  *notes.Editor
}

func (c *command) open(ctx context.Context, options *Options) (*session, error) {
	cfg, err := c.configure(options)
	if err != nil {
		return nil, err
	}

	h, err := history.Open(cfg.History)
	if err != nil {
		warnf("%v", err)
	}

	sheetID := resolve(cfg.Sheet, h)
	if sheetID == "" {
		return nil, fmt.Errorf("--url is a required option (no spreadsheet configured or recently opened)")
	}

	tokens, err := tokenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := google.NewClient(c.options...)
	validator := schema.NewValidator(schema.DefaultContract())

	s := store.New(client,
		store.WithRanges(cfg.LookupRange, cfg.LogRange),
		store.WithReadyTimeout(cfg.ReadyTimeout),
		store.WithValidator(validator, client),
		store.WithTitleCallback(h.SetTitle),
		store.WithDebug(c.debugf()))

	if c.debug {
		debugf("spreadsheet %v", sheetID)
	}

	return &session{
		cfg:     cfg,
		sheetID: sheetID,
		tokens:  tokens,
		client:  client,
		history: h,
		store:   s,
		editor:  notes.NewEditor(s, client, c.debugf(), notes.WithLog(google.Tab(cfg.LogRange), google.StartRow(cfg.LogRange))),
	}, nil
}

// resolve returns the configured spreadsheet, falling back to the most recently opened spreadsheet.
func resolve(sheet string, h *history.History) string {
	if sheet != "" {
		return sheet
	}

	if list := h.List(); len(list) > 0 {
		return list[0].ID
	}

	return ""
}

func (s *session) token(ctx context.Context) (string, error) {
	token, err := s.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("%w (%v)", workout.ErrAuthExpired, err)
	}

	return token.AccessToken, nil
}

// connect initialises the Google client and binds it to the current access token.
func (s *session) connect(ctx context.Context) error {
	if err := s.client.Init(ctx); err != nil {
		return err
	}

	token, err := s.token(ctx)
	if err != nil {
		return err
	}

	if err := s.client.Bind(token); err != nil {
		return err
	}

	return s.client.Load(ctx)
}

// load initialises the Google client concurrently with loading the workout log and records the
// spreadsheet in the history.
func (s *session) load(ctx context.Context) error {
	go func() {
		if err := s.client.Init(ctx); err != nil {
			warnf("%v", err)
		}
	}()

	token, err := s.token(ctx)
	if err != nil {
		return err
	}

	s.history.Touch(s.sheetID, time.Now())

	err = s.store.Load(ctx, store.Input{Token: token, SheetID: s.sheetID})

	s.save()

	return err
}

// save persists the history, which includes any spreadsheet title picked up by a load.
func (s *session) save() {
	if err := s.history.Save(); err != nil {
		warnf("unable to save history (%v)", err)
	}
}

package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	oauth "golang.org/x/oauth2/google"

	"github.com/fopina/xsibas-workouts/config"
	"github.com/fopina/xsibas-workouts/google"
)

func oauthConfig(credentials string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file (%v)", err)
	}

	return oauth.ConfigFromJSON(b, google.SHEETS, google.DRIVE)
}

// tokenSource returns an auto-refreshing token source for the saved OAuth2 token. Refreshed tokens
// are written back to the token file.
func tokenSource(ctx context.Context, cfg *config.Config) (oauth2.TokenSource, error) {
	conf, err := oauthConfig(cfg.Credentials)
	if err != nil {
		return nil, err
	}

	file := cfg.TokenFile()
	token, err := tokenFromFile(file)
	if err != nil {
		return nil, fmt.Errorf("not authorised - run '%v authorise' (%v)", APP, err)
	}

	return &savedTokenSource{
		file:   file,
		last:   token,
		source: conf.TokenSource(ctx, token),
	}, nil
}

type savedTokenSource struct {
	file   string
	source oauth2.TokenSource

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *savedTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil || s.last.AccessToken != token.AccessToken {
		if err := saveToken(s.file, token); err != nil {
			warnf("unable to save refreshed token (%v)", err)
		}

		s.last = token
	}

	return token, nil
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}

	return token, nil
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token (%v)", err)
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}

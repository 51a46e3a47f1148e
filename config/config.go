package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FILE          = "xsibas-workouts.yaml"
	LOOKUP_RANGE  = "Exercises!A:D"
	LOG_RANGE     = "WorkoutLog!A:Z"
	READY_TIMEOUT = 10 * time.Second
)

// Config holds the resolved application configuration
type Config struct {
	File         string
	Workdir      string
	Credentials  string
	Tokens       string
	History      string
	Sheet        string
	LookupRange  string
	LogRange     string
	ReadyTimeout time.Duration
}

// Settings represents the config file structure
type Settings struct {
	Workdir      string `yaml:"workdir,omitempty"`
	Credentials  string `yaml:"credentials,omitempty"`
	Tokens       string `yaml:"tokens,omitempty"`
	History      string `yaml:"history,omitempty"`
	Sheet        string `yaml:"sheet,omitempty"`
	LookupRange  string `yaml:"lookup-range,omitempty"`
	LogRange     string `yaml:"log-range,omitempty"`
	ReadyTimeout string `yaml:"ready-timeout,omitempty"`
}

// Flags holds the command line overrides. Empty values are not set.
type Flags struct {
	Config       string
	Workdir      string
	Credentials  string
	Tokens       string
	History      string
	Sheet        string
	LookupRange  string
	LogRange     string
	ReadyTimeout time.Duration
}

// Load resolves the configuration with priority: flags > environment (XSIBAS_*) > config file > defaults.
// The config file defaults to xsibas-workouts.yaml in the working directory and a missing file is not an error.
func Load(defaults Config, flags Flags) (*Config, error) {
	cfg := defaults

	if cfg.LookupRange == "" {
		cfg.LookupRange = LOOKUP_RANGE
	}

	if cfg.LogRange == "" {
		cfg.LogRange = LOG_RANGE
	}

	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = READY_TIMEOUT
	}

	env := environment()

	// ... locate config file
	workdir := first(flags.Workdir, env.Workdir, cfg.Workdir)
	file := first(flags.Config, os.Getenv("XSIBAS_CONFIG"), cfg.File)
	if file == "" && workdir != "" {
		file = filepath.Join(expandPath(workdir), FILE)
	}

	cfg.File = expandPath(file)

	if cfg.File != "" {
		settings, err := loadConfigFile(cfg.File)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading config file %v (%v)", cfg.File, err)
		} else if settings != nil {
			if err := apply(&cfg, *settings); err != nil {
				return nil, fmt.Errorf("invalid config file %v (%v)", cfg.File, err)
			}
		}
	}

	// ... environment variables override config file
	if err := apply(&cfg, env); err != nil {
		return nil, fmt.Errorf("invalid environment (%v)", err)
	}

	// ... command line flags override everything
	cfg.Workdir = first(flags.Workdir, cfg.Workdir)
	cfg.Credentials = first(flags.Credentials, cfg.Credentials)
	cfg.Tokens = first(flags.Tokens, cfg.Tokens)
	cfg.History = first(flags.History, cfg.History)
	cfg.Sheet = first(flags.Sheet, cfg.Sheet)
	cfg.LookupRange = first(flags.LookupRange, cfg.LookupRange)
	cfg.LogRange = first(flags.LogRange, cfg.LogRange)

	if flags.ReadyTimeout > 0 {
		cfg.ReadyTimeout = flags.ReadyTimeout
	}

	// ... derived defaults
	cfg.Workdir = expandPath(cfg.Workdir)
	cfg.Credentials = expandPath(cfg.Credentials)

	if cfg.Tokens == "" {
		cfg.Tokens = filepath.Join(cfg.Workdir, ".google")
	}

	if cfg.History == "" {
		cfg.History = filepath.Join(cfg.Workdir, "history.yaml")
	}

	cfg.Tokens = expandPath(cfg.Tokens)
	cfg.History = expandPath(cfg.History)

	return &cfg, nil
}

// TokenFile returns the path of the OAuth2 token file for the credentials.
func (c *Config) TokenFile() string {
	_, file := filepath.Split(c.Credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))
	if name == "" {
		name = "credentials"
	}

	return filepath.Join(c.Tokens, fmt.Sprintf("%s.tokens", name))
}

// Save writes the settings that differ from the defaults to the config file.
func (c *Config) Save() error {
	settings := Settings{
		Workdir:     c.Workdir,
		Credentials: c.Credentials,
		Sheet:       c.Sheet,
	}

	if c.LookupRange != LOOKUP_RANGE {
		settings.LookupRange = c.LookupRange
	}

	if c.LogRange != LOG_RANGE {
		settings.LogRange = c.LogRange
	}

	if c.ReadyTimeout != READY_TIMEOUT {
		settings.ReadyTimeout = c.ReadyTimeout.String()
	}

	bytes, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.File), 0770); err != nil {
		return err
	}

	return os.WriteFile(c.File, bytes, 0660)
}

func environment() Settings {
	return Settings{
		Workdir:      os.Getenv("XSIBAS_WORKDIR"),
		Credentials:  os.Getenv("XSIBAS_CREDENTIALS"),
		Tokens:       os.Getenv("XSIBAS_TOKENS"),
		History:      os.Getenv("XSIBAS_HISTORY"),
		Sheet:        os.Getenv("XSIBAS_SHEET"),
		LookupRange:  os.Getenv("XSIBAS_LOOKUP_RANGE"),
		LogRange:     os.Getenv("XSIBAS_LOG_RANGE"),
		ReadyTimeout: os.Getenv("XSIBAS_READY_TIMEOUT"),
	}
}

func apply(cfg *Config, settings Settings) error {
	cfg.Workdir = first(settings.Workdir, cfg.Workdir)
	cfg.Credentials = first(settings.Credentials, cfg.Credentials)
	cfg.Tokens = first(settings.Tokens, cfg.Tokens)
	cfg.History = first(settings.History, cfg.History)
	cfg.Sheet = first(settings.Sheet, cfg.Sheet)
	cfg.LookupRange = first(settings.LookupRange, cfg.LookupRange)
	cfg.LogRange = first(settings.LogRange, cfg.LogRange)

	if v := strings.TrimSpace(settings.ReadyTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ready-timeout %q", v)
		} else if timeout <= 0 {
			return fmt.Errorf("invalid ready-timeout %q", v)
		}

		cfg.ReadyTimeout = timeout
	}

	return nil
}

func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

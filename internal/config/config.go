// Package config resolves runtime settings. Values come from built-in
// defaults, then an optional YAML file, then a .env file, then process
// environment variables prefixed with CONTACTFORM_. Later sources win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-contactform/pkg/draft"
	"github.com/goliatone/go-contactform/pkg/storage"
	"github.com/goliatone/go-contactform/pkg/toast"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CONTACTFORM_"

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "contactform.yaml"

// Config is the resolved configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" envPrefix:"STORAGE_"`
	Draft   DraftConfig   `yaml:"draft" envPrefix:"DRAFT_"`
	Toast   ToastConfig   `yaml:"toast" envPrefix:"TOAST_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
}

// StorageConfig locates the slot directory.
type StorageConfig struct {
	Dir        string `yaml:"dir" env:"DIR"`
	QuotaBytes int    `yaml:"quota_bytes" env:"QUOTA_BYTES"`
}

// DraftConfig tunes the draft store and its sweeper.
type DraftConfig struct {
	Key           string        `yaml:"key" env:"KEY"`
	Retention     time.Duration `yaml:"retention" env:"RETENTION"`
	SavedDelay    time.Duration `yaml:"saved_delay" env:"SAVED_DELAY"`
	SweepSchedule string        `yaml:"sweep_schedule" env:"SWEEP_SCHEDULE"`
}

// ToastConfig tunes toast timing and icons.
type ToastConfig struct {
	Display time.Duration     `yaml:"display" env:"DISPLAY"`
	Exit    time.Duration     `yaml:"exit" env:"EXIT"`
	Theme   string            `yaml:"theme" env:"THEME"`
	Variant string            `yaml:"variant" env:"VARIANT"`
	Tokens  map[string]string `yaml:"tokens" env:"TOKENS"`
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Dir:        defaultStorageDir(),
			QuotaBytes: storage.DefaultQuota,
		},
		Draft: DraftConfig{
			Key:           draft.DefaultKey,
			Retention:     draft.DefaultRetention,
			SavedDelay:    draft.DefaultSavedDelay,
			SweepSchedule: draft.DefaultSweepSchedule,
		},
		Toast: ToastConfig{
			Display: toast.DefaultDisplay,
			Exit:    toast.DefaultExit,
			Theme:   toast.DefaultThemeName,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func defaultStorageDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "contactform", "slots")
	}
	return filepath.Join(".contactform", "slots")
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	file         string
	fileRequired bool
	dotenv       string
	environ      map[string]string
}

// WithFile reads path. A missing file is an error, unlike the default lookup.
func WithFile(path string) Option {
	return func(l *loader) {
		if strings.TrimSpace(path) != "" {
			l.file = path
			l.fileRequired = true
		}
	}
}

// WithDotEnv reads variables from path when it exists.
func WithDotEnv(path string) Option {
	return func(l *loader) {
		l.dotenv = strings.TrimSpace(path)
	}
}

// WithEnvironment replaces the process environment.
func WithEnvironment(environ map[string]string) Option {
	return func(l *loader) {
		l.environ = environ
	}
}

// Load resolves the configuration.
func Load(options ...Option) (Config, error) {
	l := &loader{
		file:   DefaultFile,
		dotenv: ".env",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	if l.environ == nil {
		l.environ = processEnvironment()
	}

	cfg := Default()
	if err := l.readFile(&cfg); err != nil {
		return Config{}, err
	}

	environ, err := l.mergeDotEnv()
	if err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg, env.Options{Environment: environ, Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (l *loader) readFile(cfg *Config) error {
	if l.file == "" {
		return nil
	}
	data, err := os.ReadFile(l.file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !l.fileRequired {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", l.file, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", l.file, err)
	}
	return nil
}

// mergeDotEnv layers .env entries under the environment; variables already
// set in the environment keep their value.
func (l *loader) mergeDotEnv() (map[string]string, error) {
	merged := make(map[string]string, len(l.environ))
	for key, value := range l.environ {
		merged[key] = value
	}
	if l.dotenv == "" {
		return merged, nil
	}
	values, err := godotenv.Read(l.dotenv)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return merged, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", l.dotenv, err)
	}
	for key, value := range values {
		if _, ok := merged[key]; !ok {
			merged[key] = value
		}
	}
	return merged, nil
}

func processEnvironment() map[string]string {
	out := make(map[string]string)
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if ok {
			out[key] = value
		}
	}
	return out
}

// Validate rejects settings the components cannot run with.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Storage.Dir) == "" {
		problems = append(problems, "storage.dir is empty")
	}
	if c.Storage.QuotaBytes < 0 {
		problems = append(problems, "storage.quota_bytes is negative")
	}
	if strings.TrimSpace(c.Draft.Key) == "" {
		problems = append(problems, "draft.key is empty")
	}
	if c.Draft.Retention <= 0 {
		problems = append(problems, "draft.retention must be positive")
	}
	if c.Draft.SavedDelay < 0 {
		problems = append(problems, "draft.saved_delay is negative")
	}
	if c.Toast.Display <= 0 {
		problems = append(problems, "toast.display must be positive")
	}
	if c.Toast.Exit < 0 {
		problems = append(problems, "toast.exit is negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not console or json", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

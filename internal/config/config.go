package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// Storage backends.
const (
	// StorageFile keeps the alarm collection in a JSON file.
	StorageFile = "file"
	// StorageSQLite keeps the alarm collection in a SQLite key-value table.
	StorageSQLite = "sqlite"
)

// Config holds the settings shared by the alarm binaries.
type Config struct {
	// Storage selects the persistence backend: "file" or "sqlite".
	Storage string `yaml:"storage"`
	// StateFile is the path of the JSON file used by the file backend.
	StateFile string `yaml:"state_file"`
	// DatabaseFile is the path of the SQLite database used by the sqlite backend.
	DatabaseFile string `yaml:"database_file"`
	// TickInterval is the period of the alarm check loop.
	TickInterval time.Duration `yaml:"tick_interval"`
	// ReloadInterval is how often the watcher re-reads the alarm collection.
	ReloadInterval time.Duration `yaml:"reload_interval"`
	// SoundEnabled allows alarm sounds globally; alarms still opt in one by one.
	SoundEnabled *bool `yaml:"sound_enabled,omitempty"`
	// Sound is "default" for the built-in beep or a path to a 16-bit PCM WAV file.
	Sound string `yaml:"sound"`
	// NotificationsEnabled allows desktop notifications.
	NotificationsEnabled *bool `yaml:"notifications_enabled,omitempty"`
	// LogLevel is the minimum level written to the log.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = "alarm-clock-settings.yaml"

	// DefaultStateFilename is the default filename for the alarm collection JSON.
	DefaultStateFilename = "alarm-clock-alarms.json"

	// DefaultDatabaseFilename is the default filename for the SQLite database.
	DefaultDatabaseFilename = "alarm-clock.db"

	// DefaultTickInterval is the default period of the alarm check loop.
	DefaultTickInterval = time.Second

	// DefaultReloadInterval is the default period between collection reloads.
	DefaultReloadInterval = time.Second

	// DefaultSound selects the built-in alarm beep.
	DefaultSound = "default"

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for files written by the binaries.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownStorage is returned for storage values other than file and sqlite.
	errUnknownStorage = errors.New("unknown storage backend")
	// errUnknownLogLevel is returned when the log level cannot be parsed.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// An empty path means DefaultConfigFilename; when that default file does not
// exist the defaults are returned.
func Load(path string) (*Config, error) {
	explicit := path != "" && path != DefaultConfigFilename
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills in defaults for unset fields.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	switch settings.Storage {
	case "":
		settings.Storage = StorageFile
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("%w: %q", errUnknownStorage, settings.Storage)
	}

	if settings.StateFile == "" {
		settings.StateFile = DefaultStateFilename
	}

	if settings.DatabaseFile == "" {
		settings.DatabaseFile = DefaultDatabaseFilename
	}

	if settings.TickInterval <= 0 {
		settings.TickInterval = DefaultTickInterval
	}

	if settings.ReloadInterval <= 0 {
		settings.ReloadInterval = DefaultReloadInterval
	}

	if settings.SoundEnabled == nil {
		settings.SoundEnabled = boolPtr(true)
	}

	if settings.Sound == "" {
		settings.Sound = DefaultSound
	}

	if settings.NotificationsEnabled == nil {
		settings.NotificationsEnabled = boolPtr(true)
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	return nil
}

// SoundAllowed reports whether alarm sounds are enabled globally.
func (c *Config) SoundAllowed() bool {
	return c.SoundEnabled == nil || *c.SoundEnabled
}

// NotificationsAllowed reports whether desktop notifications are enabled globally.
func (c *Config) NotificationsAllowed() bool {
	return c.NotificationsEnabled == nil || *c.NotificationsEnabled
}

func boolPtr(v bool) *bool {
	return &v
}

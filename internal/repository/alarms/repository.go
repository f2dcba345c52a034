package alarms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Repository defines persistence operations for the alarm collection.
type Repository interface {
	Load(ctx context.Context) ([]domain.Alarm, error)
	Save(ctx context.Context, alarms []domain.Alarm) error
	Close() error
}

var (
	// ErrNotFound is returned when nothing has been saved yet.
	ErrNotFound = errors.New("alarms not found")
	// ErrCorrupted is returned when stored data cannot be decoded.
	ErrCorrupted = errors.New("stored alarms are corrupted")
	// errUnknownStorage is returned by New for unsupported backends.
	errUnknownStorage = errors.New("unknown storage backend")
)

// New opens the repository selected by the settings.
//
//nolint:ireturn // Callers only need the Repository behaviour.
func New(cfg *config.Config) (Repository, error) {
	switch cfg.Storage {
	case config.StorageFile, "":
		return NewFileRepository(cfg.StateFile), nil
	case config.StorageSQLite:
		return NewSQLiteRepository(cfg.DatabaseFile)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownStorage, cfg.Storage)
	}
}

// decode converts the stored JSON array into alarms.
func decode(data []byte) ([]domain.Alarm, error) {
	var alarms []domain.Alarm
	if err := json.Unmarshal(data, &alarms); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	if alarms == nil {
		alarms = []domain.Alarm{}
	}

	return alarms, nil
}

// encode converts alarms into the stored JSON array; nil encodes as [].
func encode(alarms []domain.Alarm) ([]byte, error) {
	if alarms == nil {
		alarms = []domain.Alarm{}
	}

	data, err := json.MarshalIndent(alarms, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode alarms: %w", err)
	}

	return data, nil
}

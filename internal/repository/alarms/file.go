package alarms

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// FileRepository persists the alarm collection to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the JSON file.
	path string
	// mu serialises access to the file within the process.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the collection from disk.
func (r *FileRepository) Load(_ context.Context) ([]domain.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read alarms file: %w", err)
	}

	return decode(contents)
}

// Save replaces the file contents with the given collection.
// The data goes to a temporary file first so readers never see a partial write.
func (r *FileRepository) Save(_ context.Context, alarms []domain.Alarm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := encode(alarms)
	if err != nil {
		return err
	}

	if err = writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("write alarms file: %w", err)
	}

	return nil
}

// Close implements Repository; the file repository holds no open handles.
func (r *FileRepository) Close() error {
	return nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)

		return err
	}

	if _, err = tmp.Write(data); err != nil {
		return cleanup(err)
	}

	if err = tmp.Sync(); err != nil {
		return cleanup(err)
	}

	if err = tmp.Chmod(config.DefaultFilePermissions); err != nil {
		return cleanup(err)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)

		return err
	}

	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)

		return err
	}

	return nil
}

package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/csvimport"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	repo "github.com/oshokin/alarm-clock/internal/repository/alarms"
	"github.com/oshokin/alarm-clock/internal/service/clock"
	"github.com/oshokin/alarm-clock/internal/trigger"
)

// alertLog records alerts raised by the engine.
type alertLog struct {
	mu    sync.Mutex
	names []string
}

func (l *alertLog) Alert(_ context.Context, a *domain.Alarm) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.names = append(l.names, a.Name)
}

func (l *alertLog) take() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := l.names
	l.names = nil

	return names
}

func openRepository(t *testing.T, cfg *config.Config) repo.Repository {
	t.Helper()

	r, err := repo.New(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = r.Close()
	})

	return r
}

// monday returns a Monday in local time at the given clock.
func monday(hour, minute, second int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, second, 0, time.Local)
}

// TestCollectionSharedBetweenCLIAndWatcher edits alarms through the controller and
// evaluates them from a second storage handle, as the two binaries do.
func TestCollectionSharedBetweenCLIAndWatcher(t *testing.T) {
	t.Parallel()

	for _, storage := range []string{config.StorageFile, config.StorageSQLite} {
		t.Run(storage, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			cfg := config.Default()
			cfg.Storage = storage
			cfg.StateFile = filepath.Join(dir, config.DefaultStateFilename)
			cfg.DatabaseFile = filepath.Join(dir, config.DefaultDatabaseFilename)

			ctx := context.Background()

			cli, err := clock.New(ctx, openRepository(t, cfg), csvimport.NewID)
			require.NoError(t, err)

			result, err := cli.Import(ctx, csvimport.TemplateFilename, csvimport.MediaType, []byte(csvimport.Template()))
			require.NoError(t, err)
			require.Len(t, result.Imported, 2)

			// Importing the same file again adds nothing.
			result, err = cli.Import(ctx, csvimport.TemplateFilename, csvimport.MediaType, []byte(csvimport.Template()))
			require.NoError(t, err)
			require.Empty(t, result.Imported)
			require.Equal(t, 2, result.Skipped)

			nap, err := cli.Add(ctx, domain.New("Nap", "7:30", "", []string{"Monday"}, true, false))
			require.NoError(t, err)
			require.Equal(t, "07:30", nap.Time)

			watcherStorage := openRepository(t, cfg)
			alerts := new(alertLog)
			engine := trigger.NewEngine(alerts)

			scan := func(now time.Time) {
				alarms, loadErr := watcherStorage.Load(ctx)
				require.NoError(t, loadErr)

				engine.Scan(ctx, now, alarms)
			}

			scan(monday(7, 0, 0))
			scan(monday(7, 0, 30))
			require.Equal(t, []string{"Morning Alarm"}, alerts.take())

			_, err = cli.Toggle(ctx, nap.ID)
			require.NoError(t, err)

			scan(monday(7, 30, 0))
			require.Empty(t, alerts.take())

			_, err = cli.Toggle(ctx, nap.ID)
			require.NoError(t, err)

			scan(monday(7, 30, 1))
			require.Equal(t, []string{"Nap"}, alerts.take())

			require.NoError(t, cli.Delete(ctx, nap.ID))

			scan(monday(7, 31, 0))
			_, tracked := engine.State(nap.ID)
			require.False(t, tracked)

			var ics bytes.Buffer
			require.NoError(t, clock.Export(&ics, clock.FormatICS, cli.All(), monday(12, 0, 0)))
			require.Equal(t, 2, strings.Count(ics.String(), "BEGIN:VEVENT"))
			require.Contains(t, ics.String(), "BYDAY=SA,SU")
		})
	}
}

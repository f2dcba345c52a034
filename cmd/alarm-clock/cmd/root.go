package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/csvimport"
	"github.com/oshokin/alarm-clock/internal/logger"
	repo "github.com/oshokin/alarm-clock/internal/repository/alarms"
	"github.com/oshokin/alarm-clock/internal/service/clock"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides log_level from the configuration file.
	logLevel string

	// rootCmd represents the base command for managing alarms.
	rootCmd = &cobra.Command{
		Use:   "alarm-clock",
		Short: "Manage alarms watched by alarm-watch.",
		Long: `Creates, edits, enables, disables and deletes alarms.

Alarms are stored in a local JSON file or SQLite database selected in the configuration file.
CSV files can be imported in bulk; a template is available via the template command.
The alarm-watch process picks up every change on its next reload.`,
		SilenceUsage: true,
	}
)

// Execute runs the alarm-clock CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// session is an opened alarm collection.
type session struct {
	cfg     *config.Config
	service *clock.Service
	close   func()
}

// openSession loads settings and the alarm collection.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}

	parsed, ok := logger.ParseLogLevel(level)
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	logger.SetLevel(parsed)

	repository, err := repo.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	service, err := clock.New(ctx, repository, csvimport.NewID)
	if err != nil {
		_ = repository.Close()

		return nil, err
	}

	return &session{
		cfg:     cfg,
		service: service,
		close: func() {
			if closeErr := repository.Close(); closeErr != nil {
				logger.WarnKV(ctx, "Failed to close storage", "error", closeErr)
			}
		},
	}, nil
}

// withSession opens the collection for the duration of fn.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := logger.WithName(cmd.Context(), "alarm-clock")

	s, err := openSession(ctx)
	if err != nil {
		return err
	}

	defer s.close()

	return fn(ctx, s)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

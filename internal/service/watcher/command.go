package watcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
	"github.com/oshokin/alarm-clock/internal/notify"
	"github.com/oshokin/alarm-clock/internal/process"
	repo "github.com/oshokin/alarm-clock/internal/repository/alarms"
	"github.com/oshokin/alarm-clock/internal/sound"
	"github.com/oshokin/alarm-clock/internal/trigger"
)

// AppName is reported to the desktop notification server.
const AppName = "Alarm Clock"

// notificationIcon is the freedesktop icon name shown with notifications.
const notificationIcon = "alarm-symbolic"

// Options controls the watcher.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Interval overrides tick_interval from the settings when positive.
	Interval time.Duration
	// NoSound disables alarm sounds regardless of settings.
	NoSound bool
	// NoNotify disables desktop notifications regardless of settings.
	NoNotify bool
	// Out receives the visible alert lines; defaults to stdout.
	Out io.Writer
	// Guard overrides the single-instance check.
	Guard *process.Guard
}

// Run watches the alarm collection until ctx is cancelled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "alarm-watch")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	guard := opts.Guard
	if guard == nil {
		guard = process.NewGuard()
	}

	if err = guard.Ensure(ctx, process.CurrentExecutable()); err != nil {
		return err
	}

	repository, err := repo.New(cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	defer func() {
		if closeErr := repository.Close(); closeErr != nil {
			logger.WarnKV(ctx, "Failed to close storage", "error", closeErr)
		}
	}()

	engine, closeEngine := newEngine(ctx, cfg, opts)
	defer closeEngine()

	interval := cfg.TickInterval
	if opts.Interval > 0 {
		interval = opts.Interval
	}

	logger.InfoKV(ctx, "Watching alarms",
		"storage", cfg.Storage,
		"interval", interval.String(),
		"reload_interval", cfg.ReloadInterval.String())

	engine.Run(ctx, interval, newReloader(repository, cfg.ReloadInterval, time.Now).Alarms)

	logger.Info(ctx, "Context canceled, exiting")

	return nil
}

// newEngine wires the collaborators allowed by settings and flags.
// The returned func releases them.
func newEngine(ctx context.Context, cfg *config.Config, opts *Options) (*trigger.Engine, func()) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	engineOptions := []trigger.Option{
		trigger.WithSoundID(cfg.Sound),
	}

	if cfg.SoundAllowed() && !opts.NoSound {
		engineOptions = append(engineOptions, trigger.WithPlayer(sound.NewPlayer()))
	} else {
		logger.Info(ctx, "Alarm sounds are disabled")
	}

	closeEngine := func() {}

	if cfg.NotificationsAllowed() && !opts.NoNotify {
		notifier := notify.NewDBusNotifier(AppName, notificationIcon)
		if err := notifier.RequestPermission(ctx); err != nil {
			logger.WarnKV(ctx, "Desktop notifications unavailable", "error", err)
		}

		engineOptions = append(engineOptions, trigger.WithNotifier(notifier))
		closeEngine = func() {
			if err := notifier.Close(); err != nil {
				logger.WarnKV(ctx, "Failed to close session bus", "error", err)
			}
		}
	} else {
		logger.Info(ctx, "Desktop notifications are disabled")
	}

	return trigger.NewEngine(notify.NewConsoleAlerter(out), engineOptions...), closeEngine
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/service/watcher"
	"github.com/oshokin/alarm-clock/internal/version"
)

var (
	// options for the watcher, filled from flags.
	options watcher.Options

	// rootCmd represents the base command for watching alarms.
	rootCmd = &cobra.Command{
		Use:   "alarm-watch",
		Short: "Fire alarms when their time comes.",
		Long: `Checks the alarm collection every tick and fires enabled alarms whose time and day match the host clock.

Each alarm fires once per matching minute: a line is printed to the terminal, the alarm sound is
played when the alarm has sound enabled, and a desktop notification is shown when a notification
server is available on the session bus.
Changes made with alarm-clock are picked up on the next reload.
Only one alarm-watch process may run at a time.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return watcher.Run(ctx, &options)
		},
	}
)

// Execute runs the alarm-watch CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().
		StringVarP(&options.ConfigPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().DurationVar(&options.Interval, "interval", 0, "tick interval override (default from configuration)")
	rootCmd.Flags().BoolVar(&options.NoSound, "no-sound", false, "never play alarm sounds")
	rootCmd.Flags().BoolVar(&options.NoNotify, "no-notify", false, "never show desktop notifications")
}

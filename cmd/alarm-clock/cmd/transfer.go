package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/csvimport"
	"github.com/oshokin/alarm-clock/internal/service/clock"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

var (
	// importMediaType is the declared media type of the imported file.
	importMediaType string
	// templateOutput is where the CSV template is written.
	templateOutput string
	// exportFormat is csv or ics.
	exportFormat string
	// exportOutput is where the export is written; empty picks a default per format.
	exportOutput string

	importCmd = &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import alarms from a CSV file.",
		Long: `Imports alarms from a CSV file with a header row.

Recognised columns: time, name, days, enabled, category, soundEnabled. Column order does not matter.
Days are separated by semicolons. Rows without time or name are skipped, as are alarms
whose name and time already exist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			// Reject before reading the content.
			if !csvimport.IsCSV(filename, importMediaType) {
				return csvimport.ErrNotCSV
			}

			content, err := os.ReadFile(filepath.Clean(filename))
			if err != nil {
				return fmt.Errorf("read %s: %w", filename, err)
			}

			return withSession(cmd, func(ctx context.Context, s *session) error {
				result, err := s.service.Import(ctx, filepath.Base(filename), importMediaType, content)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message())

				if result.Skipped > 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d alarms that already exist\n", result.Skipped)
				}

				return nil
			})
		},
	}

	templateCmd = &cobra.Command{
		Use:   "template",
		Short: "Write a CSV template with example alarms.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeOutput(cmd, templateOutput, func(w io.Writer) error {
				_, err := io.WriteString(w, csvimport.Template())

				return err
			})
		},
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export alarms as CSV or iCalendar.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch strings.ToLower(exportFormat) {
			case clock.FormatCSV, clock.FormatICS:
			default:
				return fmt.Errorf("%w: %q", clock.ErrUnknownFormat, exportFormat)
			}

			output := exportOutput
			if output == "" {
				output = clock.DefaultExportFilename(exportFormat)
			}

			return withSession(cmd, func(_ context.Context, s *session) error {
				alarms := s.service.All()

				return writeOutput(cmd, output, func(w io.Writer) error {
					return clock.Export(w, exportFormat, alarms, time.Now())
				})
			})
		},
	}
)

// writeOutput writes to the named file, or to stdout for "-".
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == stdoutPath {
		return write(cmd.OutOrStdout())
	}

	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err = write(file); err != nil {
		_ = file.Close()

		return fmt.Errorf("write %s: %w", path, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Written %s\n", path)

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	importCmd.Flags().StringVar(&importMediaType, "media-type", "", "declared media type, e.g. text/csv")

	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", csvimport.TemplateFilename, "output file, - for stdout")

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", clock.FormatCSV, "export format: csv or ics")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file, - for stdout (default alarms.<format>)")

	rootCmd.AddCommand(importCmd, templateCmd, exportCmd)
}

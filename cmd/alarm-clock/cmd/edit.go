package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// alarmFlags holds the form fields shared by add and edit.
type alarmFlags struct {
	time     string
	name     string
	category string
	days     []string
	enabled  bool
	disabled bool
	sound    bool
}

var (
	addFlags  alarmFlags
	editFlags alarmFlags

	addCmd = &cobra.Command{
		Use:   "add",
		Short: "Add an alarm.",
		Example: `  alarm-clock add --time 07:00 --name "Morning Alarm" --days Monday,Friday --category Work --sound
  alarm-clock add --time 21:30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				created, err := s.service.Add(ctx, domain.New(
					addFlags.name,
					addFlags.time,
					addFlags.category,
					splitDays(addFlags.days),
					!addFlags.disabled,
					addFlags.sound,
				))
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Alarm %s added for %s\n", created.ID, created.Time)

				return nil
			})
		},
	}

	editCmd = &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an alarm; only the given flags change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				current, err := s.service.Get(args[0])
				if err != nil {
					return err
				}

				flags := cmd.Flags()

				if flags.Changed("time") {
					current.Time = editFlags.time
				}

				if flags.Changed("name") {
					current.Name = editFlags.name
				}

				if flags.Changed("category") {
					current.Category = editFlags.category
				}

				if flags.Changed("days") {
					current.Days = splitDays(editFlags.days)
				}

				if flags.Changed("enabled") {
					current.Enabled = editFlags.enabled
				}

				if flags.Changed("sound") {
					current.SoundEnabled = editFlags.sound
				}

				updated, err := s.service.Update(ctx, current)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Alarm %s updated\n", updated.ID)

				return nil
			})
		},
	}

	toggleCmd = &cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable a disabled alarm or disable an enabled one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				toggled, err := s.service.Toggle(ctx, args[0])
				if err != nil {
					return err
				}

				state := domain.StateDisabled
				if toggled.Enabled {
					state = domain.StateEnabled
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Alarm %s %s\n", toggled.ID, state)

				return nil
			})
		},
	}

	deleteCmd = &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an alarm.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(ctx context.Context, s *session) error {
				if err := s.service.Delete(ctx, args[0]); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Alarm %s deleted\n", args[0])

				return nil
			})
		},
	}
)

// splitDays accepts both repeated flags and comma-separated values.
func splitDays(values []string) []string {
	days := make([]string, 0, len(values))

	for _, value := range values {
		for day := range strings.SplitSeq(value, ",") {
			if day = strings.TrimSpace(day); day != "" {
				days = append(days, day)
			}
		}
	}

	return days
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	addCmd.Flags().StringVar(&addFlags.time, "time", "", "alarm time in HH:MM format")
	addCmd.Flags().StringVar(&addFlags.name, "name", "", "alarm name")
	addCmd.Flags().StringVar(&addFlags.category, "category", domain.DefaultCategory, "alarm category")
	addCmd.Flags().StringSliceVar(&addFlags.days, "days", nil, "weekdays, e.g. Monday,Friday; empty means every day")
	addCmd.Flags().BoolVar(&addFlags.disabled, "disabled", false, "create the alarm disabled")
	addCmd.Flags().BoolVar(&addFlags.sound, "sound", false, "play a sound when the alarm fires")
	_ = addCmd.MarkFlagRequired("time")

	editCmd.Flags().StringVar(&editFlags.time, "time", "", "alarm time in HH:MM format")
	editCmd.Flags().StringVar(&editFlags.name, "name", "", "alarm name")
	editCmd.Flags().StringVar(&editFlags.category, "category", "", "alarm category")
	editCmd.Flags().StringSliceVar(&editFlags.days, "days", nil, "weekdays, e.g. Monday,Friday; empty means every day")
	editCmd.Flags().BoolVar(&editFlags.enabled, "enabled", true, "enable or disable the alarm")
	editCmd.Flags().BoolVar(&editFlags.sound, "sound", false, "play a sound when the alarm fires")

	rootCmd.AddCommand(addCmd, editCmd, toggleCmd, deleteCmd)
}

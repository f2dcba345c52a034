package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/service/clock"
)

var (
	// listCategory keeps alarms of one category.
	listCategory string
	// listSearch keeps alarms whose name contains the text.
	listSearch string
	// listState keeps all, enabled or disabled alarms.
	listState string
	// listJSON switches output to JSON.
	listJSON bool

	listCmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List alarms.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := domain.ParseState(listState)
			if err != nil {
				return err
			}

			filter := domain.Filter{
				Category: listCategory,
				Search:   listSearch,
				State:    state,
			}

			return withSession(cmd, func(_ context.Context, s *session) error {
				alarms := s.service.List(filter)
				if listJSON {
					return clock.WriteJSON(cmd.OutOrStdout(), alarms)
				}

				return clock.WriteTable(cmd.OutOrStdout(), alarms)
			})
		},
	}

	categoriesCmd = &cobra.Command{
		Use:   "categories",
		Short: "List distinct alarm categories.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, func(_ context.Context, s *session) error {
				for _, category := range s.service.Categories() {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), category)
				}

				return nil
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "show only this category (\"all\" for every category)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "show only alarms whose name contains this text")
	listCmd.Flags().StringVar(&listState, "state", string(domain.StateAll), "all, enabled or disabled")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(listCmd, categoriesCmd)
}

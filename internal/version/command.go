package version

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand attaches a `version` subcommand to the provided root command
// and sets the root's --version output.
func AttachCobraVersionCommand(root *cobra.Command) {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Long:  "Print the version, commit hash, build timestamp and Go toolchain of this binary. Release builds inject them via ldflags; other builds read them from the module build info.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !asJSON {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), Full())

				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(Current())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	root.Version = Short()
	root.AddCommand(cmd)
}

package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/envspec/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stored reports and cached channel index responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, _ := cmd.Flags().GetBool("reports")
			index, _ := cmd.Flags().GetBool("index")

			opts := app.CleanOptions{
				File:    descriptorFile(cmd, nil),
				Reports: reports,
				Index:   index,
			}
			// Default behavior: clean everything.
			if !reports && !index {
				opts.Reports = true
				opts.Index = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("reports", "r", false, "Clean only the report store")
	cmd.Flags().BoolP("index", "i", false, "Clean only the channel index cache")

	return cmd
}

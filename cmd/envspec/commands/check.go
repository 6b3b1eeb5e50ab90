package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/envspec/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate an environment descriptor offline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			return c.app.Check(cmd.Context(), app.CheckOptions{
				File:   descriptorFile(cmd, args),
				Format: format,
			})
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func (c *CLI) newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Validate a descriptor and check package availability on its channels",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			parallel, _ := cmd.Flags().GetInt("parallel")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			return c.app.Verify(cmd.Context(), app.VerifyOptions{
				File:        descriptorFile(cmd, args),
				Format:      format,
				Parallelism: parallel,
				NoCache:     noCache,
			})
		},
	}
	addFormatFlag(cmd)
	cmd.Flags().IntP("parallel", "j", 0, "Maximum concurrent channel lookups (default: from settings)")
	cmd.Flags().BoolP("no-cache", "n", false, "Ignore stored reports and query the channels again")
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-run check whenever the descriptor changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			ui, _ := cmd.Flags().GetString("ui")
			return c.app.Watch(cmd.Context(), app.WatchOptions{
				File:   descriptorFile(cmd, args),
				Format: format,
				UI:     ui,
			})
		},
	}
	addFormatFlag(cmd)
	cmd.Flags().String("ui", "auto", "Display mode: auto, dashboard, or plain")
	return cmd
}

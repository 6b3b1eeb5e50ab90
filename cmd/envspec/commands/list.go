package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/envspec/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "List dependencies with their normalized version ranges",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			return c.app.List(cmd.Context(), app.ListOptions{
				File:   descriptorFile(cmd, args),
				Format: format,
			})
		},
	}
	addFormatFlag(cmd)
	return cmd
}

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <package>",
		Short: "Show the entry declaring a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			return c.app.Show(cmd.Context(), app.ShowOptions{
				File:    descriptorFile(cmd, nil),
				Format:  format,
				Package: args[0],
			})
		},
	}
	addFormatFlag(cmd)
	return cmd
}

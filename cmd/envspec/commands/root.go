// Package commands implements the CLI commands for envspec.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/envspec/internal/app"
	"go.trai.ch/envspec/internal/build"
)

// CLI represents the command line interface for envspec.
type CLI struct {
	app     Application
	logs    LogConfigurer
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Check(ctx context.Context, opts app.CheckOptions) error
	List(ctx context.Context, opts app.ListOptions) error
	Show(ctx context.Context, opts app.ShowOptions) error
	Verify(ctx context.Context, opts app.VerifyOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// LogConfigurer switches the log output between pretty text and JSON
// and toggles debug messages.
type LogConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// New creates a new CLI instance with the given app. logs may be nil.
func New(a Application, logs LogConfigurer) *CLI {
	rootCmd := &cobra.Command{
		Use:           "envspec",
		Short:         "Validate and inspect conda environment descriptors",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.PersistentFlags().StringP("file", "f", "", "Path to the environment descriptor (default: discovered from the working directory)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug messages")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// -v is taken by --verbose above, so --version gets no shorthand.
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logs:    logs,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.logs == nil {
			return
		}
		if jsonLogs, _ := cmd.Flags().GetBool("json-logs"); jsonLogs {
			c.logs.SetJSON(true)
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			c.logs.SetVerbose(true)
		}
	}

	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newVerifyCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// descriptorFile returns the positional file argument, falling back to --file.
func descriptorFile(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	file, _ := cmd.Flags().GetString("file")
	return file
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "o", "text", "Output format: text or json")
}

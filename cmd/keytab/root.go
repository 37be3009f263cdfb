package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/keytab/internal/app"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "keytab",
		Short: "Keyboard translator tool",
		Long: `Read, check and inspect keyboard translator (.keytab) files.

Translators are looked up by name in the configured search paths, or
loaded directly when given a path.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch strings.ToLower(opts.logLevel) {
			case "", "debug", "info", "warn", "warning", "error":
				return nil
			default:
				return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", opts.logLevel)
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newDumpCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newEntryCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newProbeCmd(opts))

	return cmd
}

// newApp creates the application for a command, logging to its error stream.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app.Application, error) {
	return app.New(app.Options{
		ConfigPath: opts.configPath,
		LogLevel:   opts.logLevel,
		LogOutput:  cmd.ErrOrStderr(),
	})
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dshills/keytab/internal/app"
	"github.com/dshills/keytab/internal/input/key"
	"github.com/dshills/keytab/internal/input/keytab"
)

// newDumpCmd creates the dump subcommand.
func newDumpCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump [name|path]",
		Short: "Print a translator in another format",
		Long: `Print a translator as keytab, text, json, yaml or toml.
Without an argument the configured default translator is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := keytab.ParseFormat(format)
			if err != nil {
				return err
			}

			application, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			var target string
			if len(args) > 0 {
				target = args[0]
			}
			t, err := application.Translator(target)
			if err != nil {
				return err
			}
			return keytab.Export(cmd.OutOrStdout(), t, f)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(keytab.FormatKeytab), "Output format (keytab, text, json, yaml, toml)")

	return cmd
}

// newCheckCmd creates the check subcommand.
func newCheckCmd(opts *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check [name|path...]",
		Short: "Read translators and report problems",
		Long: `Read each translator and report its entry count and diagnostics.
Without arguments every translator in the search paths is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			targets := args
			if len(targets) == 0 {
				targets = application.Loader().Names()
			}
			if len(targets) == 0 {
				return fmt.Errorf("no translators found in %s", strings.Join(application.Loader().SearchPaths(), ", "))
			}

			results, loadErr := application.Check(targets)

			out := cmd.OutOrStdout()
			warned := 0
			for _, res := range results {
				switch {
				case res.Err != nil:
					fmt.Fprintf(out, "FAIL  %s: %v\n", res.Path, res.Err)
				case res.Translator.IsEmpty():
					fmt.Fprintf(out, "EMPTY %s (zero entries)\n", res.Path)
				case len(res.Diagnostics) > 0:
					warned++
					fmt.Fprintf(out, "WARN  %s (%d entries, %d diagnostics)\n", res.Path, len(res.Translator.Entries), len(res.Diagnostics))
				default:
					fmt.Fprintf(out, "OK    %s (%d entries)\n", res.Path, len(res.Translator.Entries))
				}
				for _, d := range res.Diagnostics {
					fmt.Fprintf(out, "      %s\n", d)
				}
			}

			if loadErr != nil {
				return loadErr
			}
			if strict && warned > 0 {
				return fmt.Errorf("%d translators with diagnostics", warned)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any diagnostic is reported")

	return cmd
}

// newEntryCmd creates the entry subcommand.
func newEntryCmd(_ *rootOptions) *cobra.Command {
	var active string

	cmd := &cobra.Command{
		Use:   "entry <condition> <result>",
		Short: "Decode a single key binding",
		Long: `Decode a key binding as if read from a translator file, e.g.

  keytab entry 'Up+Shift-AppCuKeys' '\E[1;*A' --active shift`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, err := parseModifiers(active)
			if err != nil {
				return err
			}

			sink, diags := keytab.CollectDiagnostics()
			e := keytab.CreateEntry(args[0], args[1], keytab.WithDiagnostics(sink))
			for _, d := range *diags {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", d)
			}
			if e.IsNull() {
				return errors.New("no entry decoded")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, e)
			fmt.Fprintf(out, "key:       %s\n", e.KeyCode)
			if e.Command != keytab.NoCommand {
				fmt.Fprintf(out, "command:   %s\n", e.Command)
			} else {
				fmt.Fprintf(out, "output:    %s\n", keytab.Escape(e.Output(mods)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&active, "active", "", "Comma-separated active modifiers for output expansion")

	return cmd
}

// parseModifiers parses a list like "shift,ctrl".
func parseModifiers(s string) (key.Modifier, error) {
	var mods key.Modifier
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		mod := key.ModifierFromName(name)
		if mod == key.ModNone {
			return key.ModNone, fmt.Errorf("unknown modifier %q", name)
		}
		mods |= mod
	}
	return mods, nil
}

// newListCmd creates the list subcommand.
func newListCmd(opts *rootOptions) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List translators in the search paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !long {
				for _, name := range application.Loader().Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			all, loadErr := application.Translators()
			width := 0
			for _, t := range all {
				width = max(width, runewidth.StringWidth(t.Name))
			}
			for _, t := range all {
				fmt.Fprintf(out, "%s  %4d  %s\n", runewidth.FillRight(t.Name, width), len(t.Entries), t.Description)
			}
			return loadErr
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show entry counts and descriptions")

	return cmd
}

// newWatchCmd creates the watch subcommand.
func newWatchCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload translators when their files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return application.Watch(ctx, func(ev app.ReloadEvent) {
				printReload(out, ev)
			})
		},
	}

	return cmd
}

// printReload writes one line per reload event.
func printReload(out io.Writer, ev app.ReloadEvent) {
	switch {
	case ev.Err != nil:
		fmt.Fprintf(out, "error    %s: %v\n", ev.Name, ev.Err)
	case ev.Removed():
		fmt.Fprintf(out, "removed  %s\n", ev.Name)
	default:
		fmt.Fprintf(out, "reloaded %s (%d entries) from %s\n", ev.Name, len(ev.Translator.Entries), ev.Translator.Path)
	}
}

// commandContext returns the command's context, or a background one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

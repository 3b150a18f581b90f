// Package cli wires the csv2json commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-csv2json/internal/config"
	"github.com/shapestone/shape-csv2json/internal/logger"
)

// app carries state shared by every command.
type app struct {
	version string

	configPath string
	logLevel   string
	logFormat  string

	cfg config.Config
}

// NewRootCommand builds the csv2json command tree.
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version}

	root := &cobra.Command{
		Use:   "csv2json",
		Short: "Convert CSV to JSON",
		Long: "csv2json converts CSV text into a JSON array of objects, one per data row, " +
			"keyed by the header row. It runs once from the command line, as an HTTP service, " +
			"or as an MCP tool server.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: console, json")

	root.AddCommand(
		a.newConvertCommand(),
		a.newServeCommand(),
		a.newMCPCommand(),
		a.newVersionCommand(),
	)
	return root
}

// load resolves configuration and installs the logger before any command runs.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	a.cfg = cfg
	return nil
}

// Execute runs the command tree with args and reports any error on stderr.
func Execute(ctx context.Context, version string, args []string) error {
	root := NewRootCommand(version)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "csv2json %s\n", a.version)
			return err
		},
	}
}

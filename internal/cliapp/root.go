// Package cliapp provides the fnordsql command-line front end: a thin
// wrapper around pkg/parser that reads SQL from the file named by its
// argument, or from stdin, and prints any errors followed by the parsed
// tree.
package cliapp

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lswen/fnordmetric/internal/config"
)

// Version is reported by --version; cmd/fnordsql sets it from its own
// ldflags-settable version variable.
var Version = "0.1.0"

var cfgFile string

// NewRootCmd builds the fnordsql root command and its subcommands.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "fnordsql",
		Short:   "fnordsql parses SQL SELECT statements into an inspectable AST",
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			ctx := config.WithLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./fnordsql.yaml)")
	root.PersistentFlags().String("output", "", "output format: tree or sql")
	root.PersistentFlags().Bool("strict", false, "exit non-zero on any parse error")

	root.AddCommand(newParseCmd())
	root.AddCommand(newReplCmd())
	return root
}

type configContextKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configContextKey{}, cfg)
}

// configFromContext retrieves the config stored by PersistentPreRunE,
// falling back to defaults if none was set (e.g. in a unit test that
// invokes a subcommand's RunE directly).
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configContextKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{Output: config.DefaultOutputFormat}
}

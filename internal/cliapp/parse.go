package cliapp

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/lswen/fnordmetric/pkg/diagnostic"
	"github.com/lswen/fnordmetric/pkg/parser"
	"github.com/lswen/fnordmetric/pkg/printer"
)

func newParseCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a SQL SELECT statement and print its AST",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			cfg := configFromContext(cmd.Context())
			format := output
			if format == "" {
				format = string(cfg.Output)
			}
			return runParse(cmd, src, format, cfg.Strict)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output format: tree or sql (default: config output)")
	return cmd
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(b), nil
}

func runParse(cmd *cobra.Command, src, format string, strict bool) error {
	sessionID := uuid.NewString()
	sink := &diagnostic.RecordingSink{}
	tree, errs := parser.New(src, parser.WithSink(sink), parser.WithSessionID(sessionID)).Parse()

	if len(errs) > 0 {
		renderErrors(cmd.OutOrStdout(), errs)
	}

	for _, stmt := range tree.Root.Children {
		switch format {
		case "sql":
			fmt.Fprintln(cmd.OutOrStdout(), printer.SQL(stmt))
		default:
			fmt.Fprint(cmd.OutOrStdout(), printer.Debug(stmt))
		}
	}

	if strict && len(errs) > 0 {
		return fmt.Errorf("parse completed with %d error(s)", len(errs))
	}
	return nil
}

func renderErrors(w io.Writer, errs []diagnostic.ParserError) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Kind", "Line", "Column", "Message"})
	for _, e := range errs {
		t.AppendRow(table.Row{e.Kind.String(), e.At.Start.Line, e.At.Start.Column, e.Message})
	}
	t.Render()
}

package cliapp

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lswen/fnordmetric/pkg/diagnostic"
	"github.com/lswen/fnordmetric/pkg/parser"
	"github.com/lswen/fnordmetric/pkg/printer"
)

func newReplCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse SQL statements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromContext(cmd.Context())
			format := output
			if format == "" {
				format = string(cfg.Output)
			}
			return runRepl(cmd, format)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output format: tree or sql (default: config output)")
	return cmd
}

const (
	promptReady        = "fnordsql> "
	promptContinuation = "      ...> "
)

func runRepl(cmd *cobra.Command, format string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptReady,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer rl.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "fnordsql SQL REPL — type .help for commands, .quit to exit")

	var buf strings.Builder

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(promptReady)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ".") {
			if handleDotCommand(out, trimmed) {
				if trimmed == ".quit" || trimmed == ".exit" {
					return nil
				}
				continue
			}
		}

		buf.WriteString(line)
		if !strings.HasSuffix(trimmed, ";") {
			buf.WriteString(" ")
			rl.SetPrompt(promptContinuation)
			continue
		}
		rl.SetPrompt(promptReady)

		statement := buf.String()
		buf.Reset()
		evalStatement(out, statement, format, uuid.NewString())
	}
}

func handleDotCommand(out io.Writer, cmdline string) bool {
	switch cmdline {
	case ".help":
		fmt.Fprintln(out, "  .help   show this message")
		fmt.Fprintln(out, "  .quit   exit the REPL")
		return true
	case ".quit", ".exit":
		return true
	default:
		fmt.Fprintf(out, "unknown command: %s\n", cmdline)
		return true
	}
}

func evalStatement(out io.Writer, src, format, sessionID string) {
	sink := &diagnostic.RecordingSink{}
	tree, errs := parser.New(src, parser.WithSink(sink), parser.WithSessionID(sessionID)).Parse()

	if len(errs) == 0 {
		fmt.Fprint(out, okStyle.Render("ok"), "\n")
	}
	for _, e := range errs {
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("%s: %s", e.Kind, e.Message)))
		fmt.Fprintln(out, src)
		fmt.Fprintln(out, caretLine(e.At.Start.Column))
	}

	for _, stmt := range tree.Root.Children {
		switch format {
		case "sql":
			fmt.Fprintln(out, printer.SQL(stmt))
		default:
			fmt.Fprint(out, printer.Debug(stmt))
		}
	}
}

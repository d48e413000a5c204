// Package config loads the fnordsql CLI's settings through a staged koanf
// pipeline: built-in defaults, then an optional config file, then
// environment variables, then command-line flags, each layer overriding
// the last.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Output selects how the parse command renders a successful parse.
type Output string

const (
	OutputTree Output = "tree"
	OutputSQL  Output = "sql"
)

const (
	// DefaultOutputFormat is used when nothing overrides it.
	DefaultOutputFormat = OutputTree
	// DefaultConfigFile is searched for in the working directory when no
	// --config flag is given.
	DefaultConfigFile = "fnordsql.yaml"
	envPrefix         = "FNORDSQL_"
)

// Config is the fnordsql CLI's full resolved configuration.
type Config struct {
	// Output is the default rendering for `fnordsql parse` when no --output
	// flag is given: "tree" (debug pretty-printer) or "sql" (canonical
	// printer).
	Output Output `koanf:"output"`

	// Strict makes the CLI exit non-zero whenever a parse produces a
	// non-empty error list, even if a partial AST was still produced.
	Strict bool `koanf:"strict"`
}

// Load resolves Config from, in ascending priority: built-in defaults, the
// config file at cfgFile (or DefaultConfigFile if cfgFile is empty and that
// file exists), FNORDSQL_-prefixed environment variables, and any flags in
// flags that were explicitly set.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"output": string(DefaultOutputFormat),
		"strict": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return f.Name, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

type loggerKey struct{}

// LoggerKey returns the context key fnordsql's commands use to retrieve the
// request-scoped logger, avoiding an import cycle with the cliapp package.
func LoggerKey() interface{} { return loggerKey{} }

// WithLogger returns a context carrying logger, retrievable with GetLogger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger stored in ctx, or a discarding logger if
// none was set.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

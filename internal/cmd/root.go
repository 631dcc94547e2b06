// Package cmd implements the fglob command line.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/Cyclone1070/fglob"
	"github.com/Cyclone1070/fglob/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "dev"

type cliFlags struct {
	config   string
	cwd      string
	mode     string
	logLevel string
	color    string
	json     bool
	sort     bool
	tasks    bool
}

// NewRootCommand creates the fglob command using the config file from the
// user's home directory.
func NewRootCommand() *cobra.Command {
	return newRootCommand(config.NewLoader())
}

func newRootCommand(loader *config.Loader) *cobra.Command {
	var f cliFlags

	cmd := &cobra.Command{
		Use:   "fglob [flags] <pattern>...",
		Short: "Print the paths matching glob patterns",
		Long: `fglob resolves glob patterns against the filesystem and prints the
matching paths, one per line.

Patterns starting with ! exclude paths. Patterns are grouped by their
static base directory so every subtree is read at most once.

Defaults for every flag can be set in ~/.config/fglob/config.json:

  {"cli": {"mode": "stream", "sort": false}, "options": {"dot": true}}`,
		Example: `  fglob 'src/**/*.go' '!**/*_test.go'
  fglob --only-directories --mark-directories '*'
  fglob --json --stats --deep 2 '**'`,
		Args:         cobra.MinimumNArgs(1),
		Version:      Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(loader, f.config)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load config: %v\n", err)
				cfg = config.DefaultConfig()
			}
			applyConfig(cmd, &f, cfg)

			opts, err := buildOptions(cmd, &f, cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout(), f.json || opts.ObjectMode || opts.Stats, useColor(f.color, cmd.OutOrStdout()))
			if f.tasks {
				tasks, err := fglob.GenerateTasks(args, opts)
				if err != nil {
					return err
				}
				return out.tasks(tasks)
			}
			return run(args, opts, f.mode, f.sort, out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.config, "config", "", "config file (default ~/.config/fglob/config.json)")
	flags.StringVar(&f.cwd, "cwd", "", "directory patterns are resolved against (default current directory)")
	flags.StringVar(&f.mode, "mode", "sync", "resolution mode: sync, async or stream")
	flags.StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&f.color, "color", "auto", "colorize output: auto, always or never")
	flags.BoolVar(&f.json, "json", false, "print one JSON object per entry")
	flags.BoolVar(&f.sort, "sort", false, "sort paths before printing")
	flags.BoolVar(&f.tasks, "tasks", false, "print the generated tasks instead of reading the filesystem")
	registerOptionFlags(flags)

	return cmd
}

func loadConfig(loader *config.Loader, path string) (*config.Config, error) {
	if path == "" {
		return loader.Load()
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	return loader.LoadFile(expanded)
}

// applyConfig fills the command-line settings the user did not pass.
func applyConfig(cmd *cobra.Command, f *cliFlags, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("mode") {
		f.mode = cfg.CLI.Mode
	}
	if !flags.Changed("log-level") {
		f.logLevel = cfg.CLI.LogLevel
	}
	if !flags.Changed("color") {
		f.color = cfg.CLI.Color
	}
	if !flags.Changed("sort") {
		f.sort = cfg.CLI.Sort
	}
}

func buildOptions(cmd *cobra.Command, f *cliFlags, cfg *config.Config, stderr io.Writer) (*fglob.Options, error) {
	raw, err := mergeOptions(cmd.Flags(), cfg.Options)
	if err != nil {
		return nil, err
	}
	opts, err := fglob.DecodeOptions(raw)
	if err != nil {
		return nil, err
	}

	if f.cwd != "" {
		cwd, err := homedir.Expand(f.cwd)
		if err != nil {
			return nil, fmt.Errorf("invalid --cwd: %w", err)
		}
		opts.Cwd = cwd
	}

	logger, err := newLogger(stderr, f.logLevel)
	if err != nil {
		return nil, err
	}
	opts.Logger = logger
	return opts, nil
}

func newLogger(w io.Writer, name string) (log.Logger, error) {
	var allow level.Option
	switch name {
	case "debug":
		allow = level.AllowDebug()
	case "info":
		allow = level.AllowInfo()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		return nil, fmt.Errorf("invalid --log-level %q: must be debug, info, warn or error", name)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	return level.NewFilter(logger, allow), nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

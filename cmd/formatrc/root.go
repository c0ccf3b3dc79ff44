package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/formatrc/cmd/formatrc/commands"
	"github.com/walteh/formatrc/cmd/formatrc/opts"
	"github.com/walteh/formatrc/pkg/config"
	"github.com/walteh/formatrc/pkg/counter"
	"github.com/walteh/formatrc/pkg/ignore"
	"github.com/walteh/formatrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the persistent flags
type rootFlags struct {
	configFile string
	debug      bool
	dir        string
	noProgress bool
}

// newRootCmd creates the formatrc command tree writing to stdout and stderr
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	ro := &opts.RootOpts{Stdout: stdout}

	cmd := &cobra.Command{
		Use:   "formatrc",
		Short: "Run every formatter a project needs, one category at a time",
		Long: `formatrc counts the files of each category (JSON, YAML, Go, ...),
respecting the project's ignore file, runs the matching formatter for
each one and prints a summary of what happened.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), stderr, flags.debug)
			cmd.SetContext(ctx)
			return newRootOpts(ctx, flags, cmd.Flags().Changed("config"), ro)
		},
	}

	addRootFlags(cmd, flags)

	run := commands.NewRunCmd(ro)
	cmd.RunE = run.RunE

	cmd.AddCommand(
		run,
		commands.NewCountCmd(ro),
		commands.NewIgnoreCmd(ro),
		newVersionCmd(stdout),
	)

	return cmd
}

// newRootOpts fills ro with initialized dependencies
func newRootOpts(ctx context.Context, flags *rootFlags, explicitConfig bool, ro *opts.RootOpts) error {
	dir, err := filepath.Abs(flags.dir)
	if err != nil {
		return errors.Errorf("resolving directory: %w", err)
	}

	configPath := flags.configFile
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(dir, configPath)
	}

	cfg, err := config.LoadOrDefault(ctx, configPath, explicitConfig)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	resolver := ignore.NewResolver(dir, cfg.IgnoreFile)

	ro.Config = cfg
	ro.Dir = dir
	ro.Resolver = resolver
	ro.Counter = counter.New(dir, resolver)
	ro.Logger = log.New(ro.Stdout, *zerolog.Ctx(ctx))
	ro.NoProgress = flags.noProgress

	zerolog.Ctx(ctx).Debug().
		Str("dir", dir).
		Str("config", cfg.Location()).
		Int("categories", len(cfg.Categories)).
		Msg("options ready")
	return nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", config.DefaultFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.dir, "dir", ".", "project directory")
	cmd.PersistentFlags().BoolVar(&flags.noProgress, "no-progress", false, "print progress as plain lines")
}

// setupLogging puts a zerolog logger writing to w on the context. Only
// warnings are shown unless debug is set.
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

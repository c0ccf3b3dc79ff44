package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/formatrc/cmd/formatrc/opts"
	"github.com/walteh/formatrc/pkg/formatter"
	"github.com/walteh/formatrc/pkg/log"
	"github.com/walteh/formatrc/pkg/operation"
	"github.com/walteh/formatrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates the run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Format every category in the project",
		Long: `Run formats the project one category at a time.
It will:
1. Resolve the ignore patterns
2. Count the files of every category
3. Run each category's formatter in order
4. Print a detailed log and a summary

The command exits non-zero when any category reported issues.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "run").Logger().WithContext(cmd.Context())
			ctx = log.NewContext(ctx, opts.Logger)

			var spinner operation.Spinner
			progress := opts.Progress()
			if _, ok := progress.(*status.Bar); ok {
				spinner = status.NewSpinner(opts.Stdout)
			}

			op, err := operation.New(operation.Options{
				Categories: opts.Config.Categories,
				Resolver:   opts.Resolver,
				Counter:    opts.Counter,
				Invoker:    formatter.New(opts.Counter, formatter.NewExecRunner(opts.Config.CommandTimeout())),
				Progress:   progress,
				Spinner:    spinner,
				Logger:     opts.Logger,
			})
			if err != nil {
				return errors.Errorf("creating orchestrator: %w", err)
			}

			report, err := op.Run(ctx)
			if err != nil {
				return errors.Errorf("running formatters: %w", err)
			}
			return report.Err()
		},
	}

	return cmd
}

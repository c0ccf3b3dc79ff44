package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/formatrc/cmd/formatrc/opts"
	"github.com/walteh/formatrc/pkg/counter"
	"gitlab.com/tozd/go/errors"
)

// NewCountCmd creates the count command
func NewCountCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [pattern...]",
		Short: "Show how many files each pattern matches",
		Long: `Count prints a per-pattern breakdown of matching files after the
ignore patterns are applied. Without arguments it uses the configured
categories. Nothing is formatted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			specs := make([]counter.PatternSpec, 0, len(opts.Config.Categories))
			if len(args) > 0 {
				for _, pattern := range args {
					specs = append(specs, counter.PatternSpec{Pattern: pattern, Label: pattern})
				}
			} else {
				for _, c := range opts.Config.Categories {
					specs = append(specs, counter.PatternSpec{Pattern: c.Pattern, Label: c.Label})
				}
			}

			counts := opts.Counter.DetailedCounts(ctx, specs)

			patterns := make([]string, len(specs))
			for i, s := range specs {
				patterns[i] = s.Pattern
			}
			total := opts.Counter.CountMultiple(ctx, patterns)

			data := pterm.TableData{{"Label", "Pattern", "Files"}}
			for _, c := range counts {
				data = append(data, []string{c.Label, c.Pattern, strconv.Itoa(c.Count)})
			}
			data = append(data, []string{"Total", "", strconv.Itoa(total)})

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return errors.Errorf("rendering counts: %w", err)
			}
			fmt.Fprintln(opts.Stdout, table)

			source := "default patterns"
			if opts.Counter.UsingIgnoreFile() {
				source = opts.Resolver.FileName()
			}
			opts.Logger.Infof("Ignoring %d pattern(s) from %s", len(opts.Counter.IgnorePatterns(ctx)), source)
			return nil
		},
	}

	return cmd
}

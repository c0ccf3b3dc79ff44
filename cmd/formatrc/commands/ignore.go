package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/formatrc/cmd/formatrc/opts"
)

// NewIgnoreCmd creates the ignore command
func NewIgnoreCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignore",
		Short: "Print the ignore patterns a run would use",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Resolver.HasIgnoreFile() {
				opts.Logger.Infof("📋 Using ignore patterns from %s", opts.Resolver.Path())
			} else {
				opts.Logger.Infof("📋 Using default ignore patterns (no %s found)", opts.Resolver.FileName())
			}
			for _, pattern := range opts.Resolver.Resolve(cmd.Context()) {
				fmt.Fprintln(opts.Stdout, pattern)
			}
			return nil
		},
	}

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/bvm/internal/manifest"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <command>",
		Short: "Print the executable a command launches",
		Long: `Print the full path of the executable that runs for a command name.

A command bound to an installed binary resolves inside that binary's plugin
directory. A command bound to the path, or not bound at all, resolves to the
first executable on PATH outside the bvm shim directory.`,
		Example: `  bvm resolve fmt
  BVM_DEBUG=1 bvm resolve node`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			svc, err := a.resolver()
			if err != nil {
				return err
			}

			res, err := svc.CommandPath(ctx, manifest.CommandName(args[0]))
			if err != nil {
				return err
			}
			a.logger.Debug("resolved command", "command", res.Command, "source", res.Source, "path", res.Path)

			fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed binaries and global command bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			svc, err := a.resolver()
			if err != nil {
				return err
			}
			result, err := svc.List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)

			if len(result.Binaries) == 0 {
				fmt.Fprintln(out, "No binaries are installed.")
			} else {
				bold.Fprintln(out, "Installed binaries:")
				for _, group := range result.Binaries {
					fmt.Fprintf(out, "  %s\n", group.Name)
					for _, v := range group.Versions {
						fmt.Fprintf(out, "    %s\n", v)
					}
				}
			}

			if len(result.Globals) == 0 {
				return nil
			}
			fmt.Fprintln(out)
			bold.Fprintln(out, "Global bindings:")
			for _, b := range result.Globals {
				fmt.Fprintf(out, "  %s -> %s\n", b.Command, b.Location)
			}
			return nil
		},
	}
}

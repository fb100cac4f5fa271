package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/bvm/internal/config"
)

func newProjectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "project [dir]",
		Short: "Show what each binary in the project config resolves to",
		Long: `Find the nearest ` + config.FileName + ` at or above dir (default: the current
directory) and show the installed binary each declared binary resolves to.

A declaration resolves to its pinned version when installed, otherwise to
the latest installed version satisfying its version selector.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			svc, err := a.resolver()
			if err != nil {
				return err
			}
			result, err := svc.ProjectBinaries(ctx, dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Project config: %s\n", result.ConfigPath)
			if len(result.Binaries) == 0 {
				fmt.Fprintln(out, "No binaries are declared.")
				return nil
			}
			fmt.Fprintln(out)

			ok := color.New(color.FgGreen)
			missing := color.New(color.FgRed)
			unresolved := 0
			for _, b := range result.Binaries {
				if b.Resolved() {
					fmt.Fprintf(out, "  %s %s -> %s\n", ok.Sprint("✓"), b.Config, b.Binary.Identifier())
					continue
				}
				unresolved++
				fmt.Fprintf(out, "  %s %s (not installed)\n", missing.Sprint("✗"), b.Config)
			}

			if unresolved > 0 {
				fmt.Fprintln(out)
				fmt.Fprintf(out, "%d of %d binaries are not installed.\n", unresolved, len(result.Binaries))
			}
			return nil
		},
	}
}

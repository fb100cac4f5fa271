package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/bvm/internal/shell"
)

func newActivateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "activate [shell]",
		Short: "Print a script that puts the bvm shim directory on PATH",
		Long: `Print a script that prepends the bvm shim directory to PATH. Add the
matching line to your shell config:

  bash:  eval "$(bvm activate bash)"
  zsh:   eval "$(bvm activate zsh)"
  fish:  bvm activate fish | source

When no shell is given it is detected from $SHELL or the parent process.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var shellType shell.ShellType
			if len(args) == 1 {
				var err error
				if shellType, err = shell.ParseShell(args[0]); err != nil {
					return err
				}
			} else {
				detected, err := shell.DetectShell()
				if err != nil {
					return err
				}
				if !detected.Shell.IsValid() {
					return fmt.Errorf("could not detect your shell; run `bvm activate <bash|zsh|fish>`")
				}
				a.logger.Debug("detected shell", "shell", detected.Shell, "method", detected.Method)
				shellType = detected.Shell
			}

			script, err := shell.ActivationScript(shellType, a.paths.ShimDir)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), script)
			return nil
		},
	}
}

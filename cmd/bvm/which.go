package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/bvm/internal/environment"
	"github.com/ZebulonRouseFrantzich/bvm/internal/manifest"
	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

func newWhichCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "which <name> [version]",
		Short: "Show the installed binary matching a name and version",
		Long: `Show the single installed binary matching a name and an optional version
selector, and the executables it provides.

The name may be "name" or "owner/name". When several owners provide matching
binaries the owner must be given. The version may be exact ("1.2.3"), a range
("^1.2", "~1.2.0", ">=1, <2"), partial ("1.2") or "*".`,
		Example: `  bvm which fmt
  bvm which acme/fmt ^1.2`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()

			ns, err := manifest.ParseNameSelector(args[0])
			if err != nil {
				return err
			}
			vs := version.Any()
			if len(args) == 2 {
				if vs, err = version.ParseSelector(args[1]); err != nil {
					return err
				}
			}

			svc, err := a.resolver()
			if err != nil {
				return err
			}
			item, err := svc.Which(ctx, ns, vs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, item.Identifier())

			dir, err := environment.NewSystem(a.paths).PluginDir(item.Name, item.Version)
			if err != nil {
				return err
			}
			for _, c := range item.Commands {
				fmt.Fprintf(out, "  %s  %s\n", c.Name, filepath.Join(dir, c.Path))
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/bvm/internal/config"
	"github.com/ZebulonRouseFrantzich/bvm/internal/environment"
	"github.com/ZebulonRouseFrantzich/bvm/internal/logging"
	"github.com/ZebulonRouseFrantzich/bvm/internal/platform"
	"github.com/ZebulonRouseFrantzich/bvm/internal/service"
)

// EnvDebug enables debug logging when set to any non-empty value.
const EnvDebug = "BVM_DEBUG"

// commandTimeout bounds every subcommand. Resolution never touches the
// network, so this only guards against a runaway project config.
const commandTimeout = 30 * time.Second

// app holds state shared by all subcommands.
type app struct {
	manifestPath string
	debug        bool

	logger logging.Logger
	paths  environment.Paths
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bvm",
		Short: "Binary version manager",
		Long: `bvm manages several installed versions of command-line binaries and
decides which executable a command name launches.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	cmd.SetVersionTemplate("bvm {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&a.manifestPath, "manifest", "", "Manifest snapshot to read (default <data dir>/manifest.json)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Log resolution decisions to stderr (or set "+EnvDebug+")")

	cmd.AddCommand(newResolveCmd(a))
	cmd.AddCommand(newWhichCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newProjectCmd(a))
	cmd.AddCommand(newActivateCmd(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if os.Getenv(EnvDebug) != "" {
		a.debug = true
	}

	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	a.logger = logging.FromSlog(slog.New(handler))

	paths, err := environment.DefaultPaths()
	if err != nil {
		return fmt.Errorf("determine bvm directories: %w", err)
	}
	a.paths = paths
	if a.manifestPath == "" {
		a.manifestPath = paths.ManifestFile()
	}

	a.logger.Debug("bvm directories", "data", paths.DataDir, "shims", paths.ShimDir, "manifest", a.manifestPath)
	return nil
}

// resolver wires the service for one command invocation.
func (a *app) resolver() (*service.Resolver, error) {
	parser := config.NewParser(platform.NewDetector()).WithLogger(a.logger)
	return service.NewResolver(service.Options{
		ManifestPath: a.manifestPath,
		Env:          environment.NewSystem(a.paths),
		Parser:       parser,
		Logger:       a.logger,
	})
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, commandTimeout)
}

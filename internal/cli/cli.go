// Package cli wires the texscript commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/edouard-claude/texscript/internal/config"
	"github.com/edouard-claude/texscript/internal/display"
	"github.com/edouard-claude/texscript/internal/log"
	"github.com/edouard-claude/texscript/internal/preset"
	"github.com/edouard-claude/texscript/internal/tracking"
)

const version = "0.1.0"

// Version returns the current version string.
func Version() string {
	return version
}

// exitCodeError carries the exit code of the external tool out of apply.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("tool exited with code %d", e.code)
}

// app holds state shared by all commands.
type app struct {
	configPath string
	verbose    int
	cfg        *config.Config
}

// Run is the main entry point. Returns exit code.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, args[1:], os.Stdout)
}

func execute(ctx context.Context, args []string, out io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(out)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exitErr *exitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	display.PrintError(err.Error())
	return 1
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "texscript",
		Short: "MeshLab filter scripts and batch vertex-color texturing",
		Long: `texscript reads, validates and writes MeshLab filter scripts (.mlx) and
drives meshlabserver to bake vertex colors into textures for whole
directories of meshes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "raise log level (-v info, -vv debug)")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(
		a.listCmd(),
		a.showCmd(),
		a.validateCmd(),
		a.lintCmd(),
		a.convertCmd(),
		a.exportCmd(),
		a.runCmd(),
		a.applyCmd(),
		a.historyCmd(),
		a.configCmd(),
		a.initCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) load() error {
	if a.configPath == "" {
		a.configPath = config.Path()
	}
	cfg, err := config.LoadFrom(a.configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", a.configPath, err)
	}
	a.cfg = cfg

	level := cfg.Log.Level
	switch {
	case a.verbose >= 2:
		level = "debug"
	case a.verbose == 1:
		level = "info"
	case os.Getenv("TEXSCRIPT_LOG_LEVEL") != "":
		level = ""
	}
	log.Configure(log.Config{Level: level})
	return nil
}

func (a *app) registry() (*preset.Registry, error) {
	presets, err := preset.LoadAll(a.cfg.Presets.Dir)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	return preset.NewRegistry(presets), nil
}

// resolve accepts a preset name or a filter script path.
func (a *app) resolve(ref string) (*preset.Preset, error) {
	reg, err := a.registry()
	if err != nil {
		return nil, err
	}
	return reg.Resolve(ref)
}

// tracker opens the history database. History is best effort for batch
// runs, so callers may treat a nil tracker as "no history".
func (a *app) tracker() (*tracking.Tracker, error) {
	return tracking.NewTracker(tracking.DBPath(a.cfg.Tracking.DBPath))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Works without a readable config file.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "texscript v%s\n", version)
		},
	}
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/edouard-claude/texscript/internal/config"
	"github.com/edouard-claude/texscript/internal/display"
	"github.com/edouard-claude/texscript/internal/engine"
	"github.com/edouard-claude/texscript/internal/log"
	"github.com/edouard-claude/texscript/internal/script"
	"github.com/edouard-claude/texscript/internal/tee"
)

// batchFlags are shared by run and apply. Unset flags fall back to the
// config file.
type batchFlags struct {
	preset     string
	resolution int
	binary     string
	timeout    time.Duration
	set        []string
}

func (f *batchFlags) register(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVarP(&f.preset, "preset", "p", def.Presets.Default, "preset name or filter script path")
	cmd.Flags().IntVarP(&f.resolution, "resolution", "r", def.Texture.Resolution, "texture width and height in pixels")
	cmd.Flags().StringVar(&f.binary, "binary", def.MeshLab.Binary, "meshlabserver executable")
	cmd.Flags().DurationVar(&f.timeout, "timeout", def.MeshLab.Timeout.Duration, "per-mesh tool timeout (0 for none)")
	cmd.Flags().StringArrayVar(&f.set, "set", nil, "override a parameter: param=value or 'Filter Name::param=value'")
}

func (a *app) batch(cmd *cobra.Command, f *batchFlags) (*engine.Batch, error) {
	if !cmd.Flags().Changed("preset") {
		f.preset = a.cfg.Presets.Default
	}
	if !cmd.Flags().Changed("resolution") {
		f.resolution = a.cfg.Texture.Resolution
	}
	if !cmd.Flags().Changed("binary") {
		f.binary = a.cfg.MeshLab.Binary
	}
	if !cmd.Flags().Changed("timeout") {
		f.timeout = a.cfg.MeshLab.Timeout.Duration
	}
	if f.resolution <= 0 {
		return nil, fmt.Errorf("resolution must be positive, got %d", f.resolution)
	}

	overrides := make([]script.Override, 0, len(f.set))
	for _, raw := range f.set {
		o, err := script.ParseOverride(raw)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, o)
	}

	p, err := a.resolve(f.preset)
	if err != nil {
		return nil, err
	}

	return &engine.Batch{
		Preset: p,
		Options: engine.Options{
			Binary:     f.binary,
			Resolution: f.resolution,
			Overrides:  overrides,
			Jobs:       a.cfg.Batch.Jobs,
			Timeout:    f.timeout,
			Tee:        a.teeConfig(),
		},
	}, nil
}

func (a *app) teeConfig() tee.Config {
	cfg := tee.DefaultConfig()
	cfg.Enabled = a.cfg.Tee.Enabled
	cfg.Mode = a.cfg.Tee.Mode
	cfg.MaxFiles = a.cfg.Tee.MaxFiles
	cfg.MaxFileSize = a.cfg.Tee.MaxFileSize
	if a.cfg.Tee.Dir != "" {
		cfg.Dir = a.cfg.Tee.Dir
	}
	return cfg
}

func (a *app) runCmd() *cobra.Command {
	var (
		bf      batchFlags
		dir     string
		pattern string
		jobs    int
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "run [mesh.obj...]",
		Short: "Texture every matching mesh in a directory",
		Long: `run applies a preset to each mesh through meshlabserver and writes
<name>.pt.obj with a <name>.png texture next to it. Meshes come from the
arguments or, when none are given, from the .obj files in --dir whose
name matches --pattern.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.batch(cmd, &bf)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("pattern") {
				pattern = a.cfg.Texture.Pattern
			}
			if cmd.Flags().Changed("jobs") {
				b.Options.Jobs = jobs
			}
			b.Options.DryRun = dryRun

			meshes := args
			if len(meshes) == 0 {
				meshes, err = engine.Discover(dir, pattern)
				if err != nil {
					return err
				}
				if len(meshes) == 0 {
					return fmt.Errorf("no meshes matching %q in %s", pattern, dir)
				}
			}

			if !dryRun {
				tracker, err := a.tracker()
				if err != nil {
					l := log.WithComponent("cli")
					l.Warn().Err(err).Msg("history disabled")
				} else {
					defer tracker.Close()
					b.Tracker = tracker
				}
			}

			report, runErr := b.Run(cmd.Context(), meshes)
			if report != nil {
				display.Report(cmd.OutOrStdout(), report)
			}
			if runErr != nil {
				return runErr
			}
			if n := report.Count(engine.StatusFailed); n > 0 {
				return fmt.Errorf("%d of %d meshes failed", n, len(report.Results))
			}
			return nil
		},
	}
	bf.register(cmd)
	def := config.DefaultConfig()
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to scan for meshes")
	cmd.Flags().StringVar(&pattern, "pattern", def.Texture.Pattern, "mesh file name pattern, anchored at the start")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", def.Batch.Jobs, "meshes textured in parallel")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "list the jobs without running meshlabserver")
	return cmd
}

func (a *app) applyCmd() *cobra.Command {
	var bf batchFlags
	cmd := &cobra.Command{
		Use:   "apply <mesh.obj>",
		Short: "Texture one mesh with meshlabserver output shown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.batch(cmd, &bf)
			if err != nil {
				return err
			}
			code, err := b.Apply(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if code != 0 {
				return &exitCodeError{code: code}
			}
			fmt.Fprintln(cmd.OutOrStdout(), engine.NewJob(args[0]).Output)
			return nil
		},
	}
	bf.register(cmd)
	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	var opts display.HistoryOptions
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past batch runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker, err := a.tracker()
			if err != nil {
				return err
			}
			defer tracker.Close()
			return display.RunHistory(cmd.OutOrStdout(), tracker, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.Last, "last", "n", 10, "number of recent meshes to list")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show only this run ID")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format: table, json or csv")
	return cmd
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/edouard-claude/texscript/internal/display"
	"github.com/edouard-claude/texscript/internal/preset"
	"github.com/edouard-claude/texscript/internal/script"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			presets := reg.Presets()
			if len(presets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no presets found in "+a.cfg.Presets.Dir)
				return nil
			}
			display.PresetList(cmd.OutOrStdout(), presets)
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <preset|file>",
		Short: "Show the filters and parameters of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			if format == "table" {
				display.ScriptDetail(cmd.OutOrStdout(), p.Name, p.Script)
				return nil
			}
			data, err := script.MarshalFormat(p.Script, script.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, mlx or yaml")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <preset|file>...",
		Short: "Check that filter scripts are well formed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, ref := range args {
				p, err := a.resolve(ref)
				if err != nil {
					display.PrintError(err.Error())
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d filters)\n", ref, len(p.Script.Filters))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scripts invalid", failed, len(args))
			}
			return nil
		},
	}
}

func (a *app) lintCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "lint <preset|file>...",
		Short: "Report filters and parameters meshlabserver may not know",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warned := 0
			for _, ref := range args {
				p, err := a.resolve(ref)
				if err != nil {
					return err
				}
				warnings := script.Lint(p.Script)
				display.Warnings(cmd.OutOrStdout(), ref, warnings)
				warned += len(warnings)
			}
			if strict && warned > 0 {
				return fmt.Errorf("%d lint warnings", warned)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a filter script between .mlx and .yaml",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := script.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := script.WriteFile(args[1], s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
			return nil
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <preset> [out]",
		Short: "Write a preset to a file, or to stdout as .mlx",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			if len(args) == 1 || args[1] == "-" {
				data, err := script.Marshal(p.Script)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			out := args[1]
			if info, err := os.Stat(out); err == nil && info.IsDir() {
				out = filepath.Join(out, p.Name+".mlx")
			}
			if err := script.WriteFile(out, p.Script); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", describe(p), out)
			return nil
		},
	}
}

func describe(p *preset.Preset) string {
	return p.Name + " (" + string(p.Source) + ")"
}

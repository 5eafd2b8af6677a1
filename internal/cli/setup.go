package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edouard-claude/texscript/internal/config"
	"github.com/edouard-claude/texscript/internal/initcmd"
	"github.com/edouard-claude/texscript/internal/preset"
)

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", a.configPath)
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (a *app) initCmd() *cobra.Command {
	var (
		uninstall bool
		noExport  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the config file and copy the built-in presets for editing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := initcmd.Options{ConfigPath: a.configPath, Uninstall: uninstall}
			if !noExport {
				embedded, err := preset.LoadEmbedded()
				if err != nil {
					return err
				}
				for i := range embedded {
					opts.Export = append(opts.Export, &embedded[i])
				}
			}
			return initcmd.Run(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().BoolVar(&uninstall, "uninstall", false, "remove the config file")
	cmd.Flags().BoolVar(&noExport, "no-export", false, "do not copy the built-in presets")
	return cmd
}

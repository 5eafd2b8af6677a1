// Package initcmd sets up the texscript config file and preset directory.
package initcmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/edouard-claude/texscript/internal/config"
	"github.com/edouard-claude/texscript/internal/preset"
	"github.com/edouard-claude/texscript/internal/script"
)

// Options control what init writes.
type Options struct {
	ConfigPath string
	// Export copies these presets into the preset directory as .mlx files
	// the user can edit. Existing files are left alone.
	Export []*preset.Preset
	// Uninstall removes the config file instead of writing it.
	Uninstall bool
}

// Run writes the config file and creates the preset directory. An existing
// config file is backed up and rewritten with its values kept and any new
// keys filled with defaults.
func Run(w io.Writer, opts Options) error {
	if opts.Uninstall {
		return Uninstall(w, opts.ConfigPath)
	}

	cfg, err := patchConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if err := os.MkdirAll(cfg.Presets.Dir, 0755); err != nil {
		return fmt.Errorf("create preset dir: %w", err)
	}

	var exported []string
	for _, p := range opts.Export {
		dst := filepath.Join(cfg.Presets.Dir, p.Name+".mlx")
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := script.WriteFile(dst, p.Script); err != nil {
			return fmt.Errorf("export preset %s: %w", p.Name, err)
		}
		exported = append(exported, dst)
	}

	fmt.Fprintln(w, "texscript init complete:")
	fmt.Fprintf(w, "  config: %s\n", opts.ConfigPath)
	fmt.Fprintf(w, "  presets: %s\n", cfg.Presets.Dir)
	for _, path := range exported {
		fmt.Fprintf(w, "  exported: %s\n", path)
	}
	return nil
}

// Uninstall removes the config file. Presets and history are kept.
func Uninstall(w io.Writer, configPath string) error {
	if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove config: %w", err)
	}
	fmt.Fprintln(w, "texscript config removed")
	return nil
}

func patchConfig(path string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		if err := renameio.WriteFile(path+".bak", data, 0644); err != nil {
			return nil, fmt.Errorf("backup config: %w", err)
		}
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := renameio.WriteFile(path, out, 0644); err != nil {
		return nil, err
	}
	return cfg, nil
}

package initcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/edouard-claude/texscript/internal/config"
	"github.com/edouard-claude/texscript/internal/preset"
	"github.com/edouard-claude/texscript/internal/script"
)

func readConfig(t *testing.T, path string) *config.Config {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("parse written config: %v", err)
	}
	return &cfg
}

func TestPatchConfigNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if _, err := patchConfig(path); err != nil {
		t.Fatalf("patch: %v", err)
	}

	cfg := readConfig(t, path)
	if cfg.MeshLab.Binary != "meshlabserver" {
		t.Errorf("binary = %q, want default", cfg.MeshLab.Binary)
	}
	if cfg.Texture.Resolution != 4096 {
		t.Errorf("resolution = %d, want 4096", cfg.Texture.Resolution)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("no backup expected for a new config")
	}
}

func TestPatchConfigExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	existing := "[texture]\nresolution = 2048\n\n[meshlab]\nbinary = \"/opt/meshlab/meshlabserver\"\n"
	if err := os.WriteFile(path, []byte(existing), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := patchConfig(path); err != nil {
		t.Fatalf("patch: %v", err)
	}

	cfg := readConfig(t, path)
	if cfg.Texture.Resolution != 2048 {
		t.Errorf("resolution = %d, want existing 2048", cfg.Texture.Resolution)
	}
	if cfg.MeshLab.Binary != "/opt/meshlab/meshlabserver" {
		t.Errorf("binary = %q, want existing value", cfg.MeshLab.Binary)
	}
	// New keys filled from defaults.
	if cfg.Tee.Mode != "failures" {
		t.Errorf("tee mode = %q, want default", cfg.Tee.Mode)
	}

	backup, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != existing {
		t.Error("backup does not match the original config")
	}
}

func TestPatchConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[[[broken"), 0644)

	if _, err := patchConfig(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestRunExportsPresets(t *testing.T) {
	dir := t.TempDir()
	presetDir := filepath.Join(dir, "presets")
	path := filepath.Join(dir, "config.toml")
	os.WriteFile(path, []byte("[presets]\ndir = \""+filepath.ToSlash(presetDir)+"\"\n"), 0644)

	p := &preset.Preset{
		Name: "uv_only",
		Script: &script.Script{Filters: []script.Filter{
			{Name: script.FilterVertexToWedgeUV},
		}},
	}

	var buf bytes.Buffer
	if err := Run(&buf, Options{ConfigPath: path, Export: []*preset.Preset{p}}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	exported := filepath.Join(presetDir, "uv_only.mlx")
	s, err := script.ReadFile(exported)
	if err != nil {
		t.Fatalf("exported preset unreadable: %v", err)
	}
	if len(s.Filters) != 1 || s.Filters[0].Name != script.FilterVertexToWedgeUV {
		t.Errorf("exported filters = %v", s.Names())
	}
	if !strings.Contains(buf.String(), "exported: "+exported) {
		t.Errorf("output missing export line:\n%s", buf.String())
	}

	// A second run keeps the user's copy.
	os.WriteFile(exported, []byte("edited"), 0644)
	if err := Run(&bytes.Buffer{}, Options{ConfigPath: path, Export: []*preset.Preset{p}}); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	data, _ := os.ReadFile(exported)
	if string(data) != "edited" {
		t.Error("existing preset was overwritten")
	}
}

func TestUninstall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[log]\nlevel = \"info\"\n"), 0644)

	if err := Run(&bytes.Buffer{}, Options{ConfigPath: path, Uninstall: true}); err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file still present")
	}
	// Removing twice is fine.
	if err := Uninstall(&bytes.Buffer{}, path); err != nil {
		t.Errorf("second uninstall: %v", err)
	}
}

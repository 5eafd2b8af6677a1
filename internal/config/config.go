package config

import (
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPattern is the mesh file pattern of the NutritionVerse naming
// scheme: "<id>_<food><n>[_mesh].obj".
const DefaultPattern = `\d+_\D+\d+(_mesh)?.obj`

type Config struct {
	MeshLab  MeshLabConfig  `toml:"meshlab"`
	Presets  PresetsConfig  `toml:"presets"`
	Texture  TextureConfig  `toml:"texture"`
	Batch    BatchConfig    `toml:"batch"`
	Tracking TrackingConfig `toml:"tracking"`
	Tee      TeeConfig      `toml:"tee"`
	Log      LogConfig      `toml:"log"`
}

type MeshLabConfig struct {
	Binary  string   `toml:"binary"`
	Timeout Duration `toml:"timeout"`
}

type PresetsConfig struct {
	Dir     string `toml:"dir"`
	Default string `toml:"default"`
}

type TextureConfig struct {
	Resolution int    `toml:"resolution"`
	Pattern    string `toml:"pattern"`
}

type BatchConfig struct {
	Jobs int `toml:"jobs"`
}

type TrackingConfig struct {
	DBPath string `toml:"db_path"`
}

type TeeConfig struct {
	Enabled     bool   `toml:"enabled"`
	Mode        string `toml:"mode"` // "failures", "always", "never"
	MaxFiles    int    `toml:"max_files"`
	MaxFileSize int64  `toml:"max_file_size"`
	Dir         string `toml:"dir"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string ("10m") in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		MeshLab: MeshLabConfig{
			Binary:  "meshlabserver",
			Timeout: Duration{10 * time.Minute},
		},
		Presets: PresetsConfig{
			Dir:     filepath.Join(home, ".config", "texscript", "presets"),
			Default: "vertex_color_to_texture",
		},
		Texture: TextureConfig{
			Resolution: 4096,
			Pattern:    DefaultPattern,
		},
		Batch: BatchConfig{
			Jobs: 1,
		},
		Tracking: TrackingConfig{
			DBPath: filepath.Join(home, ".local", "share", "texscript", "history.db"),
		},
		Tee: TeeConfig{
			Enabled:     true,
			Mode:        "failures",
			MaxFiles:    20,
			MaxFileSize: 1 << 20, // 1MB
			Dir:         filepath.Join(home, ".local", "share", "texscript", "logs"),
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads config from file, merging with defaults. Returns defaults if file missing.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom is Load with an explicit file path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Path returns the config file location, honouring TEXSCRIPT_CONFIG.
func Path() string {
	if p := os.Getenv("TEXSCRIPT_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "texscript", "config.toml")
}

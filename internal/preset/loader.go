package preset

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/edouard-claude/texscript/internal/log"
	"github.com/edouard-claude/texscript/internal/script"
)

// EmbeddedFS is set by the main package to provide embedded presets.
// This avoids go:embed constraints on internal packages.
var EmbeddedFS fs.FS

// Source tells where a preset was loaded from.
type Source string

const (
	SourceEmbedded Source = "embedded"
	SourceUser     Source = "user"
	SourceFile     Source = "file"
)

// Preset is a named, validated filter script.
type Preset struct {
	Name   string
	Source Source
	Path   string
	Script *script.Script
}

// NameFor derives a preset name from its file name.
func NameFor(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isPresetFile(name string) bool {
	_, err := script.FormatFor(name)
	return err == nil
}

// LoadEmbedded loads all embedded presets. Unlike user presets, an invalid
// embedded preset is an error.
func LoadEmbedded() ([]Preset, error) {
	if EmbeddedFS == nil {
		return nil, nil
	}

	// Try "presets" subdir first (when embedded from root), then "." (flat)
	dir := "presets"
	entries, err := fs.ReadDir(EmbeddedFS, dir)
	if err != nil {
		dir = "."
		entries, err = fs.ReadDir(EmbeddedFS, dir)
		if err != nil {
			return nil, nil
		}
	}

	var presets []Preset
	for _, entry := range entries {
		if entry.IsDir() || !isPresetFile(entry.Name()) {
			continue
		}
		p := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(EmbeddedFS, p)
		if err != nil {
			return nil, fmt.Errorf("read embedded preset %s: %w", entry.Name(), err)
		}
		format, _ := script.FormatFor(entry.Name())
		s, err := script.Unmarshal(data, format)
		if err != nil {
			return nil, fmt.Errorf("parse embedded preset %s: %w", entry.Name(), err)
		}
		presets = append(presets, Preset{Name: NameFor(entry.Name()), Source: SourceEmbedded, Path: p, Script: s})
	}
	return presets, nil
}

// LoadUserPresets loads all filter scripts from a directory. Invalid files
// are skipped with a warning.
func LoadUserPresets(dir string) ([]Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read preset dir: %w", err)
	}

	logger := log.WithComponent("preset")
	var presets []Preset
	for _, entry := range entries {
		if entry.IsDir() || !isPresetFile(entry.Name()) {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		s, err := script.ReadFile(p)
		if err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("skipping invalid preset")
			continue
		}
		presets = append(presets, Preset{Name: NameFor(entry.Name()), Source: SourceUser, Path: p, Script: s})
	}
	return presets, nil
}

// LoadFile loads a single filter script as a preset.
func LoadFile(file string) (*Preset, error) {
	s, err := script.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return &Preset{Name: NameFor(file), Source: SourceFile, Path: file, Script: s}, nil
}

// LoadAll loads user presets (priority) and embedded presets, merging by name.
func LoadAll(userDir string) ([]Preset, error) {
	user, err := LoadUserPresets(userDir)
	if err != nil {
		return nil, err
	}

	embedded, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]bool)
	var result []Preset
	for _, p := range user {
		if byName[p.Name] {
			continue
		}
		byName[p.Name] = true
		result = append(result, p)
	}
	for _, p := range embedded {
		if !byName[p.Name] {
			result = append(result, p)
		}
	}
	return result, nil
}

// Package tee keeps the external tool's output of batch jobs on disk.
package tee

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/edouard-claude/texscript/internal/utils"
)

// Config for tee behavior.
type Config struct {
	Enabled     bool
	Mode        string // "failures", "always", "never"
	MaxFiles    int
	MaxFileSize int64
	Dir         string
}

// DefaultConfig returns tee defaults.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Enabled:     true,
		Mode:        "failures",
		MaxFiles:    20,
		MaxFileSize: 1 << 20, // 1MB
		Dir:         filepath.Join(home, ".local", "share", "texscript", "logs"),
	}
}

// MaybeSave writes the tool output of one job if the mode asks for it.
// It returns the log path, or "" when nothing was saved.
func MaybeSave(output string, failed bool, name string, cfg Config) (string, error) {
	if !cfg.Enabled || cfg.Mode == "never" {
		return "", nil
	}
	if os.Getenv("TEXSCRIPT_TEE") == "0" {
		return "", nil
	}

	shouldSave := cfg.Mode == "always" || (cfg.Mode == "failures" && failed)
	if !shouldSave || strings.TrimSpace(output) == "" {
		return "", nil
	}

	dir := cfg.Dir
	if envDir := os.Getenv("TEXSCRIPT_TEE_DIR"); envDir != "" {
		dir = envDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create tee dir: %w", err)
	}

	data := truncate(utils.StripANSI(output), cfg.MaxFileSize)

	filename := fmt.Sprintf("%d-%s.log", time.Now().UnixNano(), utils.SafeName(name))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return "", fmt.Errorf("write tee file: %w", err)
	}

	rotateFiles(dir, cfg.MaxFiles)
	return path, nil
}

// truncate cuts s to at most max bytes on a rune boundary.
func truncate(s string, max int64) string {
	if max <= 0 || int64(len(s)) <= max {
		return s
	}
	cut := int(max)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func rotateFiles(dir string, maxFiles int) {
	if maxFiles <= 0 {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var logFiles []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".log") {
			logFiles = append(logFiles, e)
		}
	}

	if len(logFiles) <= maxFiles {
		return
	}

	// Sort by name (timestamp prefix = chronological)
	sort.Slice(logFiles, func(i, j int) bool {
		return logFiles[i].Name() < logFiles[j].Name()
	})

	toRemove := len(logFiles) - maxFiles
	for i := 0; i < toRemove; i++ {
		os.Remove(filepath.Join(dir, logFiles[i].Name()))
	}
}

package texscript

import (
	"io/fs"
	"testing"

	"github.com/edouard-claude/texscript/internal/script"
)

func TestEmbeddedPresetsParse(t *testing.T) {
	files, err := fs.Glob(EmbeddedPresets, "presets/*.mlx")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no embedded presets")
	}
	for _, name := range files {
		data, err := EmbeddedPresets.ReadFile(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		s, err := script.Parse(data)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if warnings := script.Lint(s); len(warnings) > 0 {
			t.Errorf("%s: lint warnings %v", name, warnings)
		}
	}
}

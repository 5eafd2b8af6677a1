package preset

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/edouard-claude/texscript/internal/script"
)

func testPresets() []Preset {
	s := &script.Script{Filters: []script.Filter{{Name: script.FilterVertexToWedgeUV}}}
	return []Preset{
		{Name: "zeta", Source: SourceUser, Script: s},
		{Name: "alpha", Source: SourceEmbedded, Script: s},
		{Name: "zeta", Source: SourceEmbedded, Script: s},
	}
}

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry(testPresets())

	p, ok := reg.Get("zeta")
	if !ok {
		t.Fatal("zeta missing")
	}
	if p.Source != SourceUser {
		t.Errorf("first preset with a name should win, got %s", p.Source)
	}
	if _, ok := reg.Get("beta"); ok {
		t.Error("unexpected preset beta")
	}
}

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry(testPresets())
	got := strings.Join(reg.Names(), ",")
	if got != "alpha,zeta" {
		t.Errorf("Names() = %s", got)
	}
	if n := len(reg.Presets()); n != 2 {
		t.Errorf("Presets() = %d entries, want 2", n)
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry(testPresets())

	p, err := reg.Resolve("alpha")
	if err != nil || p.Name != "alpha" {
		t.Fatalf("Resolve(alpha) = %+v, %v", p, err)
	}

	path := writeFile(t, t.TempDir(), "custom.mlx", uvOnly)
	p, err = reg.Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Source != SourceFile || p.Name != "custom" {
		t.Errorf("Resolve(file) = %+v", p)
	}

	_, err = reg.Resolve("missing")
	if err == nil || !strings.Contains(err.Error(), "alpha") {
		t.Errorf("err = %v, want available names listed", err)
	}

	// A directory is not a script.
	if _, err := reg.Resolve(filepath.Dir(path)); err == nil {
		t.Error("expected error for a directory")
	}
}

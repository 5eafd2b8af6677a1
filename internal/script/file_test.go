package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"a.mlx":  FormatXML,
		"a.XML":  FormatXML,
		"a.yaml": FormatYAML,
		"a.yml":  FormatYAML,
	}
	for path, want := range tests {
		got, err := FormatFor(path)
		if err != nil || got != want {
			t.Errorf("FormatFor(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := FormatFor("a.json"); err == nil {
		t.Error("expected error for .json")
	}
}

func TestWriteReadFile(t *testing.T) {
	s := loadExample(t)
	dir := t.TempDir()

	for _, name := range []string{"out.mlx", "out.yaml"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, s); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
		back, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", name, err)
		}
		if diff := cmp.Diff(s, back); diff != "" {
			t.Errorf("%s (-want +got):\n%s", name, diff)
		}
	}
}

func TestWriteFileInvalidLeavesTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mlx")
	if err := os.WriteFile(path, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}
	bad := single(Param{Name: "b", Type: TypeBool, Value: "maybe"})
	if err := WriteFile(path, bad); err == nil {
		t.Fatal("expected error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "keep" {
		t.Errorf("target modified: %q", data)
	}
}

func TestReadFileNamesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.mlx")
	os.WriteFile(path, []byte("<FilterScript>"), 0644)

	_, err := ReadFile(path)
	if err == nil || !strings.Contains(err.Error(), "broken.mlx") {
		t.Errorf("err = %v, want path in message", err)
	}
}

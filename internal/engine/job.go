package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/edouard-claude/texscript/internal/script"
)

// Job is one mesh to texture.
type Job struct {
	Mesh    string // path of the input mesh
	Output  string // path of the textured mesh
	Texture string // texture file name, written next to the mesh
}

// NewJob derives output and texture names from a mesh path:
// "1_apple3_mesh.obj" gives "1_apple3_mesh.pt.obj" and "1_apple3.png".
func NewJob(mesh string) Job {
	dir, name := filepath.Split(mesh)
	return Job{
		Mesh:    mesh,
		Output:  filepath.Join(dir, strings.TrimSuffix(name, filepath.Ext(name))+".pt.obj"),
		Texture: TextureName(name),
	}
}

// TextureName strips the "_mesh" and "_pc" markers and swaps the extension for .png.
func TextureName(meshFile string) string {
	name := filepath.Base(meshFile)
	name = strings.ReplaceAll(name, "_mesh", "")
	name = strings.ReplaceAll(name, "_pc", "")
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".png"
}

// Discover lists the .obj files in dir whose name matches pattern from
// its first character, in lexical order.
func Discover(dir, pattern string) ([]string, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("mesh pattern: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read mesh dir: %w", err)
	}
	var meshes []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".obj") {
			continue
		}
		if re.MatchString(e.Name()) {
			meshes = append(meshes, filepath.Join(dir, e.Name()))
		}
	}
	return meshes, nil
}

// TextureOverrides are the per-mesh settings the batch applies to a
// preset: texture size, a border-less basic parametrization and the
// derived texture file name.
func TextureOverrides(job Job, resolution int) []script.Override {
	res := strconv.Itoa(resolution)
	return []script.Override{
		{Filter: script.FilterTrivialParam, Param: "textdim", Value: res},
		{Filter: script.FilterTrivialParam, Param: "border", Value: "0"},
		{Filter: script.FilterTrivialParam, Param: "method", Value: "Basic"},
		{Filter: script.FilterColorToTexture, Param: "textName", Value: job.Texture},
		{Filter: script.FilterColorToTexture, Param: "textW", Value: res},
		{Filter: script.FilterColorToTexture, Param: "textH", Value: res},
		{Filter: script.FilterColorToTexture, Param: "overwrite", Value: "true"},
	}
}

// declared keeps the overrides whose filter and parameter exist in s.
func declared(s *script.Script, overrides []script.Override) []script.Override {
	var out []script.Override
	for _, o := range overrides {
		f, ok := s.Filter(o.Filter)
		if !ok {
			continue
		}
		if _, ok := f.Param(o.Param); ok {
			out = append(out, o)
		}
	}
	return out
}

// MeshLabArgs builds the meshlabserver command line for one job.
func MeshLabArgs(job Job, scriptPath string) []string {
	return []string{
		"-i", filepath.Base(job.Mesh),
		"-o", filepath.Base(job.Output),
		"-m", "wt", "vc",
		"-s", scriptPath,
	}
}

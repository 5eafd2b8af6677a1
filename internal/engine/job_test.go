package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureName(t *testing.T) {
	tests := []struct {
		mesh string
		want string
	}{
		{"1_apple3_mesh.obj", "1_apple3.png"},
		{"12_banana1.obj", "12_banana1.png"},
		{"7_carrot2_pc.obj", "7_carrot2.png"},
		{"/data/meshes/3_kiwi1_mesh.obj", "3_kiwi1.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TextureName(tt.mesh), tt.mesh)
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob(filepath.Join("data", "1_apple3_mesh.obj"))

	assert.Equal(t, filepath.Join("data", "1_apple3_mesh.obj"), job.Mesh)
	assert.Equal(t, filepath.Join("data", "1_apple3_mesh.pt.obj"), job.Output)
	assert.Equal(t, "1_apple3.png", job.Texture)
}

func TestMeshLabArgs(t *testing.T) {
	job := NewJob("/data/1_apple3_mesh.obj")
	args := MeshLabArgs(job, "/tmp/run/script.mlx")

	assert.Equal(t, []string{
		"-i", "1_apple3_mesh.obj",
		"-o", "1_apple3_mesh.pt.obj",
		"-m", "wt", "vc",
		"-s", "/tmp/run/script.mlx",
	}, args)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"1_apple3_mesh.obj",
		"2_pear1.obj",
		"notes.txt",
		"x_apple3_mesh.obj",
		"3_kiwi1_mesh.pt.obj.bak",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("v 0 0 0\n"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "4_plum1.obj"), 0755))

	meshes, err := Discover(dir, `\d+_\D+\d+(_mesh)?.obj`)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "1_apple3_mesh.obj"),
		filepath.Join(dir, "2_pear1.obj"),
	}, meshes)

	all, err := Discover(dir, `.*`)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDiscoverBadPattern(t *testing.T) {
	_, err := Discover(t.TempDir(), `(`)
	assert.Error(t, err)
}

func TestDiscoverMissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), `.*`)
	assert.Error(t, err)
}

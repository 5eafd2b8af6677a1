package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/edouard-claude/texscript/internal/preset"
	"github.com/edouard-claude/texscript/internal/script"
)

func sampleScript() *script.Script {
	return &script.Script{Filters: []script.Filter{
		{Name: script.FilterVertexToWedgeUV},
		{Name: script.FilterTrivialParam, Params: []script.Param{
			{Name: "textdim", Type: script.TypeInt, Value: "4096", Description: "Texture Dimension (px)"},
			{Name: "method", Type: script.TypeEnum, Value: "1", Enum: []string{"Basic", "Space-optimizing"}},
		}},
	}}
}

func TestScriptDetail(t *testing.T) {
	var buf bytes.Buffer
	ScriptDetail(&buf, "sample", sampleScript())
	out := buf.String()
	for _, want := range []string{
		"1. " + script.FilterVertexToWedgeUV,
		"no parameters",
		"2. " + script.FilterTrivialParam,
		"compute_texcoord_parametrization_triangle_trivial_per_wedge",
		"Texture Dimension (px)",
		"1 (Space-optimizing)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParamValue(t *testing.T) {
	tests := []struct {
		p    script.Param
		want string
	}{
		{script.Param{Type: script.TypeInt, Value: "12"}, "12"},
		{script.Param{Type: script.TypeEnum, Value: "0", Enum: []string{"Basic"}}, "0 (Basic)"},
		{script.Param{Type: script.TypeEnum, Value: "5", Enum: []string{"Basic"}}, "5"},
	}
	for _, tt := range tests {
		if got := ParamValue(&tt.p); got != tt.want {
			t.Errorf("ParamValue(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestPresetList(t *testing.T) {
	var buf bytes.Buffer
	PresetList(&buf, []*preset.Preset{
		{Name: "vertex_color_to_texture", Source: preset.SourceEmbedded, Path: "presets/vertex_color_to_texture.mlx", Script: sampleScript()},
	})
	out := buf.String()
	if !strings.Contains(out, "vertex_color_to_texture") || !strings.Contains(out, "embedded") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestWarnings(t *testing.T) {
	var buf bytes.Buffer
	Warnings(&buf, "clean", nil)
	if strings.TrimSpace(buf.String()) != "clean: ok" {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	Warnings(&buf, "odd", []script.Warning{{Filter: "Smooth", Msg: "filter not in catalog"}})
	if !strings.Contains(buf.String(), "odd: Smooth: filter not in catalog") {
		t.Errorf("got %q", buf.String())
	}
}

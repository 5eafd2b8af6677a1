package script

import (
	"fmt"
	"sort"
	"strings"
)

// CatalogEntry describes a filter of the external tool that presets drive.
type CatalogEntry struct {
	Name     string
	Function string // PyMeshLab function name
	Params   []string
}

// Filter names as exported by MeshLab, in the order of the texturing pipeline.
const (
	FilterTextureFunction = "Per Vertex Texture Function"
	FilterVertexToWedgeUV = "Convert PerVertex UV into PerWedge UV"
	FilterTrivialParam    = "Parametrization: Trivial Per-Triangle"
	FilterColorToTexture  = "Transfer: Vertex Color to Texture"
)

var catalog = map[string]CatalogEntry{
	FilterTextureFunction: {
		Name:     FilterTextureFunction,
		Function: "compute_texcoord_by_function_per_vertex",
		Params:   []string{"u", "v", "onselected"},
	},
	FilterVertexToWedgeUV: {
		Name:     FilterVertexToWedgeUV,
		Function: "compute_texcoord_transfer_vertex_to_wedge",
	},
	FilterTrivialParam: {
		Name:     FilterTrivialParam,
		Function: "compute_texcoord_parametrization_triangle_trivial_per_wedge",
		Params:   []string{"sidedim", "textdim", "border", "method"},
	},
	FilterColorToTexture: {
		Name:     FilterColorToTexture,
		Function: "compute_texmap_from_color",
		Params:   []string{"textName", "textW", "textH", "overwrite", "assign", "pullpush"},
	},
}

// Lookup returns the catalog entry for a filter name. Surrounding
// whitespace is ignored; MeshLab exports some names with a trailing space.
func Lookup(name string) (CatalogEntry, bool) {
	e, ok := catalog[strings.TrimSpace(name)]
	return e, ok
}

// Catalog returns all known filters sorted by name.
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(catalog))
	for _, e := range catalog {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Warning is a non-fatal finding from Lint.
type Warning struct {
	Filter string
	Param  string
	Msg    string
}

func (w Warning) String() string {
	if w.Param == "" {
		return fmt.Sprintf("%s: %s", w.Filter, w.Msg)
	}
	return fmt.Sprintf("%s/%s: %s", w.Filter, w.Param, w.Msg)
}

// Lint reports filters and parameters that the catalog does not know.
// A valid script can still produce warnings.
func Lint(s *Script) []Warning {
	var warnings []Warning
	for _, f := range s.Filters {
		entry, ok := Lookup(f.Name)
		if !ok {
			warnings = append(warnings, Warning{Filter: f.Name, Msg: "filter not in catalog"})
			continue
		}
		known := make(map[string]bool, len(entry.Params))
		for _, name := range entry.Params {
			known[name] = true
		}
		for _, p := range f.Params {
			if !known[p.Name] {
				warnings = append(warnings, Warning{Filter: f.Name, Param: p.Name, Msg: "parameter not accepted by " + entry.Function})
			}
		}
	}
	return warnings
}

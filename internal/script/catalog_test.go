package script

import (
	"sort"
	"testing"
)

func TestLookup(t *testing.T) {
	e, ok := Lookup("Transfer: Vertex Color to Texture ")
	if !ok {
		t.Fatal("trailing space should be ignored")
	}
	if e.Function != "compute_texmap_from_color" {
		t.Errorf("function = %q", e.Function)
	}
	if _, ok := Lookup("Laplacian Smooth"); ok {
		t.Error("unexpected catalog entry")
	}
}

func TestCatalogSorted(t *testing.T) {
	entries := Catalog()
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	if !sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name }) {
		t.Error("catalog not sorted by name")
	}
}

func TestLintExampleClean(t *testing.T) {
	if warnings := Lint(loadExample(t)); len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestLintFindings(t *testing.T) {
	s := &Script{Filters: []Filter{
		{Name: "Laplacian Smooth"},
		{Name: FilterColorToTexture, Params: []Param{
			{Name: "textW", Type: TypeInt, Value: "1"},
			{Name: "gamma", Type: TypeFloat, Value: "2.2"},
		}},
	}}
	warnings := Lint(s)
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(warnings), warnings)
	}
	if got := warnings[0].String(); got != "Laplacian Smooth: filter not in catalog" {
		t.Errorf("warning[0] = %q", got)
	}
	if got := warnings[1].String(); got != "Transfer: Vertex Color to Texture/gamma: parameter not accepted by compute_texmap_from_color" {
		t.Errorf("warning[1] = %q", got)
	}
}

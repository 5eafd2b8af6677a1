package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func FuzzParse(f *testing.F) {
	if data, err := os.ReadFile(filepath.Join("testdata", "vertex_color_to_texture.mlx")); err == nil {
		f.Add(data)
	}
	f.Add([]byte(`<FilterScript><filter name="f"><Param name="m" type="RichEnum" value="0" enum_val0="A" enum_cardinality="1"/></filter></FilterScript>`))
	f.Add([]byte(`<FilterScript/>`))
	f.Add([]byte(`<!DOCTYPE x [<!ENTITY a "b">]><FilterScript>&a;</FilterScript>`))

	f.Fuzz(func(t *testing.T, data []byte) {
		s, err := Parse(data)
		if err != nil {
			if !errors.Is(err, ErrInvalidScript) {
				t.Fatalf("rejection %v is not ErrInvalidScript", err)
			}
			return
		}
		out, err := Marshal(s)
		if err != nil {
			t.Fatalf("accepted script does not marshal: %v", err)
		}
		back, err := Parse(out)
		if err != nil {
			t.Fatalf("marshalled script does not parse: %v\n%s", err, out)
		}
		if diff := cmp.Diff(s.Names(), back.Names()); diff != "" {
			t.Fatalf("filters changed (-first +second):\n%s", diff)
		}
	})
}

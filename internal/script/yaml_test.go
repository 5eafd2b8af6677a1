package script

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseYAML(t *testing.T) {
	doc := `
filters:
  - name: Convert PerVertex UV into PerWedge UV
  - name: "Parametrization: Trivial Per-Triangle"
    params:
      - name: textdim
        type: RichInt
        value: "2048"
      - name: method
        type: RichEnum
        value: "1"
        enum: [Basic, Space-optimizing]
`
	s, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Filters) != 2 {
		t.Fatalf("got %d filters, want 2", len(s.Filters))
	}
	method, _ := s.Filters[1].Param("method")
	if _, label, _ := method.Selected(); label != "Space-optimizing" {
		t.Errorf("method = %q", label)
	}
}

func TestParseYAMLInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":       ``,
		"malformed":   `}{`,
		"unknown key": "filters:\n  - name: f\n    steps: []\n",
		"bad bool":    "filters:\n  - name: f\n    params:\n      - {name: b, type: RichBool, value: yes}\n",
		"no options":  "filters:\n  - name: f\n    params:\n      - {name: m, type: RichEnum, value: \"0\"}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(doc)); !errors.Is(err, ErrInvalidScript) {
				t.Errorf("err = %v, want ErrInvalidScript", err)
			}
		})
	}
}

func TestYAMLMatchesXML(t *testing.T) {
	s := loadExample(t)

	data, err := MarshalYAML(s)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	if !strings.Contains(string(data), "enum:") {
		t.Errorf("enum options missing from yaml:\n%s", data)
	}
	back, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("parse yaml: %v\n%s", err, data)
	}
	if diff := cmp.Diff(s, back); diff != "" {
		t.Errorf("yaml round trip (-xml +yaml):\n%s", diff)
	}
}

func TestMarshalYAMLRejectsInvalid(t *testing.T) {
	s := single(Param{Name: "n", Type: TypeInt, Value: "many"})
	if _, err := MarshalYAML(s); !errors.Is(err, ErrInvalidScript) {
		t.Errorf("err = %v", err)
	}
}

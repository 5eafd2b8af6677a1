package script

import (
	"encoding/xml"
	"errors"
	"testing"
)

func TestParamAccessors(t *testing.T) {
	n := Param{Name: "textW", Type: TypeInt, Value: "4096"}
	if v, err := n.Int(); err != nil || v != 4096 {
		t.Errorf("Int() = %d, %v", v, err)
	}
	if _, err := n.Bool(); !errors.Is(err, ErrInvalidScript) {
		t.Errorf("Bool() on RichInt: err = %v", err)
	}

	b := Param{Name: "pullpush", Type: TypeBool, Value: "true"}
	if v, err := b.Bool(); err != nil || !v {
		t.Errorf("Bool() = %v, %v", v, err)
	}

	f := Param{Name: "gamma", Type: TypeFloat, Value: "2.2"}
	if v, err := f.Float(); err != nil || v != 2.2 {
		t.Errorf("Float() = %v, %v", v, err)
	}

	e := Param{Name: "method", Type: TypeEnum, Value: "3", Enum: []string{"Basic"}}
	if _, _, err := e.Selected(); !errors.Is(err, ErrInvalidScript) {
		t.Errorf("Selected() out of range: err = %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := &Script{Filters: []Filter{{Name: "f", Params: []Param{{
		Name: "m", Type: TypeEnum, Value: "0", Enum: []string{"A", "B"},
		Extra: []xml.Attr{{Name: xml.Name{Local: "x"}, Value: "1"}},
	}}}}}
	c := s.Clone()
	c.Filters[0].Name = "g"
	c.Filters[0].Params[0].Enum[0] = "Z"
	c.Filters[0].Params[0].Extra[0].Value = "2"

	p := s.Filters[0].Params[0]
	if s.Filters[0].Name != "f" || p.Enum[0] != "A" || p.Extra[0].Value != "1" {
		t.Errorf("clone shares state with original: %+v", s)
	}
}

func TestFilterLookup(t *testing.T) {
	s := &Script{Filters: []Filter{{Name: "Transfer: Vertex Color to Texture "}}}
	if _, ok := s.Filter(FilterColorToTexture); !ok {
		t.Error("name lookup should ignore surrounding whitespace")
	}
	if _, ok := s.Filter("other"); ok {
		t.Error("unexpected match")
	}
}

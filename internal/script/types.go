package script

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// ParamType is the declared type tag of a filter parameter.
type ParamType string

const (
	TypeString ParamType = "RichString"
	TypeInt    ParamType = "RichInt"
	TypeBool   ParamType = "RichBool"
	TypeEnum   ParamType = "RichEnum"
	TypeFloat  ParamType = "RichFloat"
)

// Known reports whether t is a type tag this package can validate.
func (t ParamType) Known() bool {
	switch t {
	case TypeString, TypeInt, TypeBool, TypeEnum, TypeFloat:
		return true
	}
	return false
}

// Script is an ordered filter pipeline. Order is execution order.
type Script struct {
	Filters []Filter `yaml:"filters"`
}

// Filter is a named operation of the external tool with its parameters.
type Filter struct {
	Name   string  `yaml:"name"`
	Params []Param `yaml:"params,omitempty"`
}

// Param is a typed, named, defaulted input to a Filter.
type Param struct {
	Name        string    `yaml:"name"`
	Type        ParamType `yaml:"type"`
	Value       string    `yaml:"value"`
	Description string    `yaml:"description,omitempty"`
	Tooltip     string    `yaml:"tooltip,omitempty"`
	// Enum holds option labels for TypeEnum; Value is the selected index.
	Enum []string `yaml:"enum,omitempty"`
	// Extra keeps attributes this package does not interpret, in document order.
	Extra []xml.Attr `yaml:"-"`
}

// Filter returns the first filter with the given name.
func (s *Script) Filter(name string) (*Filter, bool) {
	name = strings.TrimSpace(name)
	for i := range s.Filters {
		if strings.TrimSpace(s.Filters[i].Name) == name {
			return &s.Filters[i], true
		}
	}
	return nil, false
}

// Names returns filter names in pipeline order.
func (s *Script) Names() []string {
	names := make([]string, len(s.Filters))
	for i, f := range s.Filters {
		names[i] = f.Name
	}
	return names
}

// Clone returns a deep copy of s.
func (s *Script) Clone() *Script {
	out := &Script{Filters: make([]Filter, len(s.Filters))}
	for i, f := range s.Filters {
		nf := Filter{Name: f.Name}
		if f.Params != nil {
			nf.Params = make([]Param, len(f.Params))
			for j, p := range f.Params {
				np := p
				if p.Enum != nil {
					np.Enum = append([]string(nil), p.Enum...)
				}
				if p.Extra != nil {
					np.Extra = append([]xml.Attr(nil), p.Extra...)
				}
				nf.Params[j] = np
			}
		}
		out.Filters[i] = nf
	}
	return out
}

// Param returns the parameter with the given name.
func (f *Filter) Param(name string) (*Param, bool) {
	for i := range f.Params {
		if f.Params[i].Name == name {
			return &f.Params[i], true
		}
	}
	return nil, false
}

// Int returns the value of a RichInt parameter.
func (p *Param) Int() (int64, error) {
	if p.Type != TypeInt {
		return 0, p.typeMismatch(TypeInt)
	}
	return strconv.ParseInt(p.Value, 10, 64)
}

// Bool returns the value of a RichBool parameter.
func (p *Param) Bool() (bool, error) {
	if p.Type != TypeBool {
		return false, p.typeMismatch(TypeBool)
	}
	switch p.Value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, &ValidationError{Index: -1, Param: p.Name, Msg: "boolean value must be \"true\" or \"false\", got " + strconv.Quote(p.Value)}
}

// Float returns the value of a RichFloat parameter.
func (p *Param) Float() (float64, error) {
	if p.Type != TypeFloat {
		return 0, p.typeMismatch(TypeFloat)
	}
	return strconv.ParseFloat(p.Value, 64)
}

// Selected returns the index and label of the chosen enum option.
func (p *Param) Selected() (int, string, error) {
	if p.Type != TypeEnum {
		return 0, "", p.typeMismatch(TypeEnum)
	}
	idx, err := strconv.Atoi(p.Value)
	if err != nil || idx < 0 || idx >= len(p.Enum) {
		return 0, "", &ValidationError{Index: -1, Param: p.Name, Msg: "selected index " + strconv.Quote(p.Value) + " outside options"}
	}
	return idx, p.Enum[idx], nil
}

func (p *Param) typeMismatch(want ParamType) error {
	return &ValidationError{Index: -1, Param: p.Name, Msg: "declared " + string(p.Type) + ", not " + string(want)}
}

package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownParam is returned when an override names no declared parameter.
var ErrUnknownParam = errors.New("unknown parameter")

// filterSep separates the filter name from the parameter in an override key.
const filterSep = "::"

// Override sets one parameter value. An empty Filter applies the value to
// every filter that declares Param.
type Override struct {
	Filter string
	Param  string
	Value  string
}

func (o Override) String() string {
	if o.Filter == "" {
		return o.Param + "=" + o.Value
	}
	return o.Filter + filterSep + o.Param + "=" + o.Value
}

// ParseOverride parses "param=value" or "Filter Name::param=value".
func ParseOverride(s string) (Override, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return Override{}, fmt.Errorf("override %q: want [filter%s]param=value", s, filterSep)
	}
	var o Override
	if filter, param, found := strings.Cut(key, filterSep); found {
		o.Filter = strings.TrimSpace(filter)
		o.Param = strings.TrimSpace(param)
	} else {
		o.Param = strings.TrimSpace(key)
	}
	if o.Param == "" {
		return Override{}, fmt.Errorf("override %q: empty parameter name", s)
	}
	o.Value = value
	return o, nil
}

// WithParam returns a validated copy of s with the parameter set. s is not
// modified. Enum parameters accept either an option index or an option label.
func (s *Script) WithParam(filter, param, value string) (*Script, error) {
	return s.Apply(Override{Filter: filter, Param: param, Value: value})
}

// Apply returns a validated copy of s with all overrides applied in order.
func (s *Script) Apply(overrides ...Override) (*Script, error) {
	out := s.Clone()
	for _, o := range overrides {
		if err := out.set(o); err != nil {
			return nil, err
		}
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Script) set(o Override) error {
	filter := strings.TrimSpace(o.Filter)
	matched := false
	for i := range s.Filters {
		f := &s.Filters[i]
		if filter != "" && strings.TrimSpace(f.Name) != filter {
			continue
		}
		p, ok := f.Param(o.Param)
		if !ok {
			continue
		}
		p.Value = resolveValue(p, o.Value)
		matched = true
	}
	if !matched {
		return fmt.Errorf("%w %q (override %s)", ErrUnknownParam, o.Param, o)
	}
	return nil
}

func resolveValue(p *Param, value string) string {
	if p.Type != TypeEnum {
		return value
	}
	if _, err := strconv.Atoi(value); err == nil {
		return value
	}
	for i, label := range p.Enum {
		if strings.EqualFold(label, value) {
			return strconv.Itoa(i)
		}
	}
	return value
}

package script

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Validate checks every filter and parameter of s. It returns the first
// violation as a *ValidationError.
func Validate(s *Script) error {
	if s == nil {
		return structuralf("nil script")
	}
	for i := range s.Filters {
		if err := validateFilter(i, &s.Filters[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateFilter(idx int, f *Filter) error {
	if f.Name == "" {
		return paramf(idx, "", "", "missing filter name")
	}
	if err := checkText("filter name", f.Name); err != nil {
		return paramf(idx, f.Name, "", "%s", err.Error())
	}
	seen := make(map[string]bool, len(f.Params))
	for i := range f.Params {
		p := &f.Params[i]
		if p.Name == "" {
			return paramf(idx, f.Name, "", "param[%d] missing name", i)
		}
		if seen[p.Name] {
			return paramf(idx, f.Name, p.Name, "duplicate parameter name")
		}
		seen[p.Name] = true
		if err := checkParamText(p); err != nil {
			return paramf(idx, f.Name, p.Name, "%s", err.Error())
		}
		if err := validateParam(p); err != nil {
			return paramf(idx, f.Name, p.Name, "%s", err.Error())
		}
	}
	return nil
}

// validateParam checks that the default value matches the declared type.
func validateParam(p *Param) error {
	if !p.Type.Known() {
		return fmt.Errorf("unknown type %q", p.Type)
	}
	if p.Type != TypeEnum && len(p.Enum) > 0 {
		return fmt.Errorf("enumeration options on %s parameter", p.Type)
	}
	switch p.Type {
	case TypeInt:
		if _, err := strconv.ParseInt(p.Value, 10, 64); err != nil {
			return fmt.Errorf("integer value %q is not base-10", p.Value)
		}
	case TypeBool:
		if p.Value != "true" && p.Value != "false" {
			return fmt.Errorf("boolean value must be \"true\" or \"false\", got %q", p.Value)
		}
	case TypeFloat:
		if _, err := strconv.ParseFloat(p.Value, 64); err != nil {
			return fmt.Errorf("float value %q does not parse", p.Value)
		}
	case TypeEnum:
		if len(p.Enum) == 0 {
			return fmt.Errorf("enumeration has no options")
		}
		idx, err := strconv.Atoi(p.Value)
		if err != nil {
			return fmt.Errorf("enumeration index %q is not an integer", p.Value)
		}
		if idx < 0 || idx >= len(p.Enum) {
			return fmt.Errorf("enumeration index %d outside [0, %d)", idx, len(p.Enum))
		}
	}
	return nil
}

// checkParamText rejects strings the XML form cannot carry, so that every
// valid script survives Encode and Parse unchanged.
func checkParamText(p *Param) error {
	fields := []struct{ field, text string }{
		{"name", p.Name},
		{"value", p.Value},
		{"description", p.Description},
		{"tooltip", p.Tooltip},
	}
	for _, f := range fields {
		if err := checkText(f.field, f.text); err != nil {
			return err
		}
	}
	for i, label := range p.Enum {
		if err := checkText(attrEnumPrefix+strconv.Itoa(i), label); err != nil {
			return err
		}
	}
	for _, a := range p.Extra {
		if err := checkText(a.Name.Local, a.Value); err != nil {
			return err
		}
	}
	return nil
}

func checkText(field, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%s is not valid UTF-8", field)
	}
	for i, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("%s has character %U at byte %d that XML cannot represent", field, r, i)
		}
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

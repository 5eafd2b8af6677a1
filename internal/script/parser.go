package script

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strconv"

	"github.com/edouard-claude/texscript/internal/utils"
)

const (
	rootElement   = "FilterScript"
	filterElement = "filter"
	paramElement  = "Param"

	attrName        = "name"
	attrType        = "type"
	attrValue       = "value"
	attrDescription = "description"
	attrTooltip     = "tooltip"
	attrCardinality = "enum_cardinality"
	attrEnumPrefix  = "enum_val"

	// Exported presets are a few KB; anything this large is not a filter script.
	maxScriptSize = 8 << 20
)

var enumAttrRe = utils.NewLazyRegex(`^enum_val(\d+)$`)

// Parse decodes an XML filter script and validates it.
func Parse(data []byte) (*Script, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads an XML filter script from r and validates it.
func Decode(r io.Reader) (*Script, error) {
	dec := xml.NewDecoder(io.LimitReader(r, maxScriptSize))
	dec.Strict = true
	// No entity expansion beyond the XML builtins.
	dec.Entity = make(map[string]string)

	s, err := decodeDocument(dec)
	if err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeDocument(dec *xml.Decoder) (*Script, error) {
	var s *Script
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, structuralf("malformed xml: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if s != nil {
				return nil, structuralf("unexpected second root element <%s>", t.Name.Local)
			}
			if t.Name.Local != rootElement {
				return nil, structuralf("root element is <%s>, want <%s>", t.Name.Local, rootElement)
			}
			s, err = decodeFilters(dec)
			if err != nil {
				return nil, err
			}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, structuralf("text outside <%s>", rootElement)
			}
		}
	}
	if s == nil {
		return nil, structuralf("missing <%s> root element", rootElement)
	}
	return s, nil
}

func decodeFilters(dec *xml.Decoder) (*Script, error) {
	s := &Script{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, structuralf("malformed xml: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != filterElement {
				return nil, structuralf("unexpected <%s> in <%s>", t.Name.Local, rootElement)
			}
			f, err := decodeFilter(dec, t, len(s.Filters))
			if err != nil {
				return nil, err
			}
			s.Filters = append(s.Filters, *f)
		case xml.EndElement:
			return s, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, structuralf("unexpected text in <%s>", rootElement)
			}
		}
	}
}

func decodeFilter(dec *xml.Decoder, start xml.StartElement, idx int) (*Filter, error) {
	f := &Filter{}
	named := false
	for _, a := range start.Attr {
		if a.Name.Space == "" && a.Name.Local == attrName {
			f.Name = a.Value
			named = true
		}
	}
	if !named {
		return nil, paramf(idx, "", "", "<%s> without %s attribute", filterElement, attrName)
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, structuralf("malformed xml: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != paramElement {
				return nil, paramf(idx, f.Name, "", "unexpected <%s> in <%s>", t.Name.Local, filterElement)
			}
			p, err := decodeParam(t.Attr, idx, f.Name)
			if err != nil {
				return nil, err
			}
			if err := expectEmpty(dec, idx, f.Name, p.Name); err != nil {
				return nil, err
			}
			f.Params = append(f.Params, *p)
		case xml.EndElement:
			return f, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, paramf(idx, f.Name, "", "unexpected text in <%s>", filterElement)
			}
		}
	}
}

// expectEmpty consumes the body of a <Param> element, which carries no content.
func expectEmpty(dec *xml.Decoder, idx int, filter, param string) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return structuralf("malformed xml: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return paramf(idx, filter, param, "unexpected <%s> in <%s>", t.Name.Local, paramElement)
		case xml.EndElement:
			return nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return paramf(idx, filter, param, "unexpected text in <%s>", paramElement)
			}
		}
	}
}

func decodeParam(attrs []xml.Attr, idx int, filter string) (*Param, error) {
	p := &Param{}
	var hasName, hasType, hasValue bool
	cardinality := -1
	labels := make(map[int]string)

	for _, a := range attrs {
		if a.Name.Space != "" {
			// Prefixed attributes never carry MeshLab fields.
			p.Extra = append(p.Extra, a)
			continue
		}
		switch a.Name.Local {
		case attrName:
			p.Name, hasName = a.Value, true
		case attrType:
			p.Type, hasType = ParamType(a.Value), true
		case attrValue:
			p.Value, hasValue = a.Value, true
		case attrDescription:
			p.Description = a.Value
		case attrTooltip:
			p.Tooltip = a.Value
		case attrCardinality:
			n, err := strconv.Atoi(a.Value)
			if err != nil || n < 0 {
				return nil, paramf(idx, filter, p.Name, "%s %q is not a count", attrCardinality, a.Value)
			}
			cardinality = n
		default:
			if n, ok := enumAttrRe.Group(a.Name.Local, 1); ok {
				i, err := strconv.Atoi(n)
				if err != nil {
					return nil, paramf(idx, filter, p.Name, "bad option attribute %s", a.Name.Local)
				}
				if _, dup := labels[i]; dup {
					return nil, paramf(idx, filter, p.Name, "duplicate option %s%d", attrEnumPrefix, i)
				}
				labels[i] = a.Value
				continue
			}
			p.Extra = append(p.Extra, a)
		}
	}

	switch {
	case !hasName:
		return nil, paramf(idx, filter, "", "<%s> without %s attribute", paramElement, attrName)
	case !hasType:
		return nil, paramf(idx, filter, p.Name, "missing %s attribute", attrType)
	case !hasValue:
		return nil, paramf(idx, filter, p.Name, "missing %s attribute", attrValue)
	}

	if p.Type != TypeEnum {
		if cardinality >= 0 || len(labels) > 0 {
			return nil, paramf(idx, filter, p.Name, "enumeration attributes on %s parameter", p.Type)
		}
		return p, nil
	}

	if cardinality < 0 {
		return nil, paramf(idx, filter, p.Name, "missing %s attribute", attrCardinality)
	}
	if len(labels) != cardinality {
		return nil, paramf(idx, filter, p.Name, "%d options declared, %d present", cardinality, len(labels))
	}
	p.Enum = make([]string, cardinality)
	for i := 0; i < cardinality; i++ {
		label, ok := labels[i]
		if !ok {
			return nil, paramf(idx, filter, p.Name, "missing option %s%d", attrEnumPrefix, i)
		}
		p.Enum[i] = label
	}
	return p, nil
}

package script

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// Encode writes s in the XML form the external tool reads. The script is
// validated first; an invalid script is never written.
func Encode(w io.Writer, s *Script) error {
	if err := Validate(s); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<!DOCTYPE "+rootElement+">\n"); err != nil {
		return fmt.Errorf("write doctype: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", " ")

	root := xml.StartElement{Name: xml.Name{Local: rootElement}}
	if err := enc.EncodeToken(root); err != nil {
		return fmt.Errorf("encode script: %w", err)
	}
	for _, f := range s.Filters {
		start := xml.StartElement{
			Name: xml.Name{Local: filterElement},
			Attr: []xml.Attr{attr(attrName, f.Name)},
		}
		if err := enc.EncodeToken(start); err != nil {
			return fmt.Errorf("encode filter %q: %w", f.Name, err)
		}
		for i := range f.Params {
			el := xml.StartElement{Name: xml.Name{Local: paramElement}, Attr: paramAttrs(&f.Params[i])}
			if err := enc.EncodeToken(el); err != nil {
				return fmt.Errorf("encode filter %q param %q: %w", f.Name, f.Params[i].Name, err)
			}
			if err := enc.EncodeToken(el.End()); err != nil {
				return fmt.Errorf("encode filter %q param %q: %w", f.Name, f.Params[i].Name, err)
			}
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return fmt.Errorf("encode filter %q: %w", f.Name, err)
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return fmt.Errorf("encode script: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush script: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Marshal returns the XML form of s.
func Marshal(s *Script) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func paramAttrs(p *Param) []xml.Attr {
	attrs := make([]xml.Attr, 0, 6+len(p.Enum)+len(p.Extra))
	attrs = append(attrs,
		attr(attrName, p.Name),
		attr(attrType, string(p.Type)),
		attr(attrValue, p.Value),
	)
	if p.Type == TypeEnum {
		for i, label := range p.Enum {
			attrs = append(attrs, attr(attrEnumPrefix+strconv.Itoa(i), label))
		}
		attrs = append(attrs, attr(attrCardinality, strconv.Itoa(len(p.Enum))))
	}
	attrs = append(attrs,
		attr(attrDescription, p.Description),
		attr(attrTooltip, p.Tooltip),
	)
	return append(attrs, p.Extra...)
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

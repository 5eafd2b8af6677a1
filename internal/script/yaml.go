package script

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes the YAML authoring form of a filter script and
// validates it. Unknown keys are rejected.
func ParseYAML(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, structuralf("empty document")
		}
		return nil, structuralf("malformed yaml: %v", err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// MarshalYAML returns the YAML authoring form of s. Attributes kept in
// Param.Extra have no YAML representation and are dropped.
func MarshalYAML(s *Script) ([]byte, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

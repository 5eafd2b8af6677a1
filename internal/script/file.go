package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// Format is the on-disk encoding of a filter script.
type Format string

const (
	FormatXML  Format = "mlx"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mlx", ".xml":
		return FormatXML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported filter script extension %q", filepath.Ext(path))
}

// Unmarshal parses data in the given format.
func Unmarshal(data []byte, format Format) (*Script, error) {
	switch format {
	case FormatXML:
		return Parse(data)
	case FormatYAML:
		return ParseYAML(data)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// MarshalFormat encodes s in the given format.
func MarshalFormat(s *Script, format Format) ([]byte, error) {
	switch format {
	case FormatXML:
		return Marshal(s)
	case FormatYAML:
		return MarshalYAML(s)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// ReadFile loads and validates a filter script, choosing the decoder by extension.
func ReadFile(path string) (*Script, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read filter script: %w", err)
	}
	s, err := Unmarshal(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteFile atomically replaces path with the encoding of s chosen by extension.
func WriteFile(path string, s *Script) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := MarshalFormat(s, format)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write filter script: %w", err)
	}
	return nil
}

package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a layout table file format.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "JSON"
	case FormatYAML:
		return "YAML"
	case FormatTOML:
		return "TOML"
	default:
		return "Unknown"
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported layout file extension %q", filepath.Ext(path))
	}
}

// Decode reads a layout table in the given format and validates it.
func Decode(r io.Reader, format Format) (*Layout, error) {
	var l Layout
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&l)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&l)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(&l)
	default:
		return nil, fmt.Errorf("unsupported layout format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s layout: %w", format, err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Load reads and validates a layout table file. A missing name is filled in
// from the file's base name.
func Load(path string) (*Layout, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout: %w", err)
	}
	defer f.Close()

	l, err := Decode(f, format)
	if err != nil {
		return nil, err
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l, nil
}

// Resolve returns the built-in layout with the given name, or loads it as a
// file path when no built-in matches.
func Resolve(nameOrPath string) (*Layout, error) {
	if l, ok := Get(nameOrPath); ok {
		return l, nil
	}
	return Load(nameOrPath)
}

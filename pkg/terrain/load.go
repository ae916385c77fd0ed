package terrain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// mapFile is the on-disk YAML layout of a map.
type mapFile struct {
	Name    string     `yaml:"name"`
	Heights HeightGrid `yaml:"heights"`
	Types   []string   `yaml:"types"`
}

// LoadMap reads and validates a YAML map file.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	m, err := ParseMap(data)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

// ParseMap decodes and validates YAML map data.
func ParseMap(data []byte) (*Map, error) {
	var f mapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}
	return NewMap(f.Name, f.Heights, TypeGrid(f.Types))
}

// MarshalYAML encodes m in the format read by ParseMap.
func (m *Map) MarshalYAML() (any, error) {
	return mapFile{Name: m.Name, Heights: m.Heights, Types: []string(m.Types)}, nil
}

package celestial

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogDocument mirrors the YAML layout of a catalog file.
type catalogDocument struct {
	Secret string         `yaml:"secret"`
	Bodies []bodyDocument `yaml:"bodies"`
}

type bodyDocument struct {
	ID       int     `yaml:"id"`
	Name     string  `yaml:"name"`
	Distance float64 `yaml:"distance"`
	Size     float64 `yaml:"size"`
	Speed    float64 `yaml:"speed"`
	Color    string  `yaml:"color"`
	Phrase   string  `yaml:"phrase"`
}

// Default returns the built-in seven-planet catalog.
func Default() *Registry {
	reg, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return reg
}

// Load decodes a YAML catalog and validates it.
func Load(r io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc catalogDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %v", ErrInvalidCatalog, err)
	}

	bodies := make([]Body, 0, len(doc.Bodies))
	for _, b := range doc.Bodies {
		bodies = append(bodies, Body{
			ID:            b.ID,
			Name:          b.Name,
			OrbitalRadius: b.Distance,
			DisplaySize:   b.Size,
			AngularSpeed:  b.Speed,
			PayloadText:   b.Phrase,
			Color:         b.Color,
		})
	}
	return New(bodies, doc.Secret)
}

// LoadFile reads a catalog from path. An empty path yields the default catalog.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

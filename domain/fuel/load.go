package fuel

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pyrosense/domain/core"
	"pyrosense/domain/units"
)

// catalogDoc is the on-disk YAML shape of a catalog.
type catalogDoc struct {
	Classes []classDoc `yaml:"classes"`
}

type classDoc struct {
	Name       string                 `yaml:"name"`
	Properties map[string]quantityDoc `yaml:"properties"`
}

type quantityDoc struct {
	Value float64 `yaml:"value"`
	Unit  string  `yaml:"unit"`
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	classes := make([]Class, 0, len(doc.Classes))
	for i, cd := range doc.Classes {
		props := make(map[core.StandardName]units.Quantity, len(cd.Properties))
		for name, qd := range cd.Properties {
			u, err := units.Parse(qd.Unit)
			if err != nil {
				return nil, fmt.Errorf("class %d property %s: %w", i+1, name, err)
			}
			props[core.StandardName(name)] = units.Scalar(qd.Value, u)
		}
		classes = append(classes, Class{Name: cd.Name, Properties: props})
	}

	return NewCatalog(classes)
}

// ReadCatalog decodes a YAML catalog from a reader.
func ReadCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// LoadCatalog decodes a YAML catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return ParseCatalog(data)
}

package dataset

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var referenceYAML []byte

// Load reads a dataset from a YAML file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset file: %w", err)
	}
	return Parse(data)
}

// LoadDir loads a dataset from a project directory.
// It looks for providers.yaml in the given directory.
func LoadDir(dir string) (*Dataset, error) {
	return Load(filepath.Join(dir, "providers.yaml"))
}

// Parse decodes a dataset document.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("parsing dataset YAML: %w", err)
	}
	return &ds, nil
}

// Default returns the embedded reference dataset: the seven providers of
// La Réunion and the territory's catalogues.
func Default() *Dataset {
	ds, err := Parse(referenceYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded reference dataset: %v", err))
	}
	return ds
}

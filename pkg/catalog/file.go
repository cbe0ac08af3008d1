package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/wayfarer/pkg/domain"
	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a catalog file.
type File struct {
	Places []domain.Place `yaml:"places" json:"places"`
}

// LoadFile reads a catalog file (YAML or JSON, chosen by extension) and builds a Catalog.
// Malformed records are quarantined in the returned Report.
func LoadFile(path string) (*Catalog, Report, error) {
	return Load(context.Background(), FileSource{Path: path})
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return data, nil
}

// Parse decodes catalog data. ext selects the format (".json"; anything else is YAML).
// Both a top-level "places" list and a bare list are accepted.
func Parse(data []byte, ext string) ([]domain.Place, error) {
	var cfg File
	if strings.ToLower(ext) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			var bare []domain.Place
			if errBare := json.Unmarshal(data, &bare); errBare != nil {
				return nil, fmt.Errorf("failed to parse catalog json: %w", err)
			}
			return bare, nil
		}
		return cfg.Places, nil
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		var bare []domain.Place
		if errBare := yaml.Unmarshal(data, &bare); errBare != nil {
			return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
		}
		return bare, nil
	}
	return cfg.Places, nil
}

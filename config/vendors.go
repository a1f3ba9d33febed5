package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tak-akashi/test-ocr-models/extract"
)

// Vendor is one entry of the vendors.yaml mapping. An explicit dir pins the
// vendor to a directory; when dir is empty the aggregator probes the
// conventional names under the corpus root.
type Vendor struct {
	Name     string  `yaml:"name"`
	Dir      string  `yaml:"dir"`
	Format   string  `yaml:"format"`
	MinScore float64 `yaml:"min_score"`
}

type vendorsFile struct {
	Vendors []Vendor `yaml:"vendors"`
}

// ParsedFormat validates and converts the format string.
func (v Vendor) ParsedFormat() (extract.Format, error) {
	f, err := extract.ParseFormat(v.Format)
	if err != nil {
		return "", fmt.Errorf("%w: vendor %s: %v", ErrConfiguration, v.Name, err)
	}
	return f, nil
}

// LoadVendors parses a vendors.yaml mapping. Vendor order is preserved; it
// determines column order in combined artifacts.
func LoadVendors(path string) ([]Vendor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: vendors file: %v", ErrConfiguration, err)
	}

	var file vendorsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: vendors file %s: %v", ErrConfiguration, path, err)
	}
	if len(file.Vendors) == 0 {
		return nil, fmt.Errorf("%w: vendors file %s lists no vendors", ErrConfiguration, path)
	}

	seen := map[string]bool{}
	for _, v := range file.Vendors {
		if v.Name == "" {
			return nil, fmt.Errorf("%w: vendors file %s: vendor without a name", ErrConfiguration, path)
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("%w: vendors file %s: duplicate vendor %s", ErrConfiguration, path, v.Name)
		}
		seen[v.Name] = true
		if _, err := v.ParsedFormat(); err != nil {
			return nil, err
		}
	}
	return file.Vendors, nil
}

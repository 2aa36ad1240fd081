package temple

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// tableFile is the YAML shape of a classification override file.
type tableFile struct {
	Groups []Group `yaml:"groups"`
}

// LoadGroups reads a classification table from a YAML file. Used to
// extend the built-in table without a rebuild.
func LoadGroups(path string) ([]Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classification table: %w", err)
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse classification table: %w", err)
	}

	if len(file.Groups) == 0 {
		return nil, fmt.Errorf("classification table %s defines no groups", path)
	}

	for i, g := range file.Groups {
		if g.Tag == "" {
			return nil, fmt.Errorf("classification table %s: group %d has no tag", path, i)
		}
	}

	return file.Groups, nil
}

// NewClassifierFromFile builds a classifier from a YAML table file.
func NewClassifierFromFile(path string) (*Classifier, error) {
	groups, err := LoadGroups(path)
	if err != nil {
		return nil, err
	}
	return NewClassifierWithGroups(groups), nil
}

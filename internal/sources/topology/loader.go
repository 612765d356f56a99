package topology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of topology.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new topology loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the topology file
func (l *Loader) Load() (*Config, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse topology yaml: %w", err)
	}

	if len(config.Contexts) == 0 {
		return nil, fmt.Errorf("topology file %s declares no contexts", l.filePath)
	}

	return &config, nil
}

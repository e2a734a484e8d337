package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/petrarca/doc-architect/internal/validation"
)

// configFileNames are probed in order at the scan root
var configFileNames = []string{".doc-architect.yml", ".doc-architect.yaml"}

// ProjectConfig represents the optional .doc-architect.yml file at the
// root of a scanned repository.
type ProjectConfig struct {
	ProjectName string   `yaml:"project_name,omitempty"`
	Scanners    []string `yaml:"scanners,omitempty"`
	Exclude     []string `yaml:"exclude,omitempty"`
	SearchRoots []string `yaml:"search_roots,omitempty"`
}

// LoadProjectConfig attempts to load the project configuration from the
// scan root. A missing file returns an empty config, not an error; a
// present but invalid file is an error so a typo never silently changes
// what gets scanned.
func LoadProjectConfig(scanPath string) (*ProjectConfig, error) {
	for _, name := range configFileNames {
		configPath := filepath.Join(scanPath, name)
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		if err := validation.ValidateYAML("doc-architect-config.json", data); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		var config ProjectConfig
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return &config, nil
	}

	return &ProjectConfig{}, nil
}

// MergeScanners merges config scanners with CLI scanners. CLI takes
// precedence when both are set.
func (c *ProjectConfig) MergeScanners(cliScanners []string) []string {
	if len(cliScanners) > 0 {
		return cliScanners
	}
	if c == nil {
		return nil
	}
	return c.Scanners
}

// MergeExcludes merges config excludes with CLI excludes, deduplicated
func (c *ProjectConfig) MergeExcludes(cliExcludes []string) []string {
	var all []string
	if c != nil {
		all = append(all, c.Exclude...)
	}
	all = append(all, cliExcludes...)

	seen := make(map[string]struct{}, len(all))
	var result []string
	for _, exclude := range all {
		if _, dup := seen[exclude]; dup {
			continue
		}
		seen[exclude] = struct{}{}
		result = append(result, exclude)
	}
	return result
}

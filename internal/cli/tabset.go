package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/backtrack/internal/harness"
	"github.com/roach88/backtrack/internal/tabnav"
)

// TabSetFile is the on-disk description of a tab set. It is the
// configuration half of a scenario file: the same tabs/initial/primary
// shape, without setup, flow or assertions.
type TabSetFile struct {
	// Tabs declares the tab set.
	Tabs []harness.TabSpec `yaml:"tabs"`

	// InitialTab names the tab selected at construction.
	InitialTab string `yaml:"initial_tab"`

	// PrimaryTab names the "home" tab for back resolution.
	PrimaryTab string `yaml:"primary_tab"`
}

// LoadTabSet reads a tab-set YAML file and builds its validated
// configuration. Violations found during validation come back as a
// *tabnav.ConfigError, aggregated rather than first-only.
func LoadTabSet(path string) (tabnav.Config[string], error) {
	file, err := readTabSetFile(path)
	if err != nil {
		return tabnav.Config[string]{}, err
	}

	tabs := make([]tabnav.TabDefinition[string], len(file.Tabs))
	for i, spec := range file.Tabs {
		tabs[i] = tabnav.TabDefinition[string]{ID: spec.ID, Root: spec.Root, Label: spec.Label}
	}
	return tabnav.NewConfig(tabs, file.InitialTab, file.PrimaryTab)
}

// readTabSetFile parses the file without validating the tab set.
// Unknown YAML fields are rejected so typos fail loudly.
func readTabSetFile(path string) (*TabSetFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tab-set file: %w", err)
	}

	var file TabSetFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &file, nil
}

package nimbus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FunctionManifest is the YAML shape of a deployable function description,
// consumed by `nimbus functions deploy -f`.
type FunctionManifest struct {
	Name        string            `yaml:"name"`
	Runtime     string            `yaml:"runtime"`
	Handler     string            `yaml:"handler"`
	Description string            `yaml:"description,omitempty"`
	Memory      int32             `yaml:"memory,omitempty"`
	Timeout     int32             `yaml:"timeout,omitempty"`
	ArchiveURL  string            `yaml:"archive_url,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
	Tags        map[string]string `yaml:"tags,omitempty"`
}

// LoadFunctionManifest reads a YAML manifest from disk.
func LoadFunctionManifest(path string) (*FunctionManifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- manifest path comes from the caller
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest FunctionManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	return &manifest, nil
}

// CreateInput converts the manifest into a CreateFunctionInput. Empty YAML
// fields become absent input fields; required-field checking stays with the
// input's Request method.
func (m *FunctionManifest) CreateInput() *CreateFunctionInput {
	input := &CreateFunctionInput{}

	if m.Name != "" {
		input.FunctionName = String(m.Name)
	}

	if m.Runtime != "" {
		runtime := Runtime(m.Runtime)
		input.Runtime = &runtime
	}

	if m.Handler != "" {
		input.Handler = String(m.Handler)
	}

	if m.Description != "" {
		input.Description = String(m.Description)
	}

	if m.Memory != 0 {
		input.MemorySize = Int32(m.Memory)
	}

	if m.Timeout != 0 {
		input.Timeout = Int32(m.Timeout)
	}

	if m.ArchiveURL != "" {
		input.Code = &FunctionCode{ArchiveURL: String(m.ArchiveURL)}
	}

	if m.Environment != nil {
		input.Environment = &Environment{Variables: m.Environment}
	}

	if m.Tags != nil {
		input.Tags = m.Tags
	}

	return input
}

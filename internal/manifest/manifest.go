// Package manifest loads and validates agent manifests. A manifest describes
// an agent to the scheduler: identity, runtime, command, I/O pins, and
// lifecycle limits.
package manifest

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Manifest describes a single agent.
type Manifest struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	Runtime string   `yaml:"runtime,omitempty" json:"runtime,omitempty"`
	Command []string `yaml:"command,omitempty" json:"command,omitempty"`
	Args    []string `yaml:"args,omitempty" json:"args,omitempty"`

	Env []EnvVar `yaml:"env,omitempty" json:"env,omitempty"`

	Inputs  []Pin `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Outputs []Pin `yaml:"outputs,omitempty" json:"outputs,omitempty"`

	TimeoutSeconds int `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
	Retries        int `yaml:"retries,omitempty" json:"retries,omitempty"`

	Labels map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

// EnvVar is an environment variable passed to the agent process.
type EnvVar struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Pin describes an input or output of the agent.
type Pin struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
}

var pinTypes = map[string]bool{
	"text":   true,
	"json":   true,
	"stream": true,
	"file":   true,
	"image":  true,
}

// Agent IDs are dotted identifiers, e.g. "dev.echo-agent".
var idPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9_-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9_-]*[a-z0-9])?)*$`)

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse parses manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Validate checks the manifest for schema problems and returns one message
// per issue. An empty slice means the manifest is valid.
func (m *Manifest) Validate() []string {
	var issues []string

	if m.ID == "" {
		issues = append(issues, "id is required")
	} else if !idPattern.MatchString(m.ID) {
		issues = append(issues, fmt.Sprintf("id %q is not a valid agent identifier", m.ID))
	}
	if m.Name == "" {
		issues = append(issues, "name is required")
	}
	if m.TimeoutSeconds < 0 {
		issues = append(issues, "timeout_seconds must not be negative")
	}
	if m.Retries < 0 {
		issues = append(issues, "retries must not be negative")
	}

	issues = append(issues, validatePins("inputs", m.Inputs)...)
	issues = append(issues, validatePins("outputs", m.Outputs)...)

	for i, env := range m.Env {
		if env.Name == "" {
			issues = append(issues, fmt.Sprintf("env[%d]: name is required", i))
		}
	}

	return issues
}

func validatePins(section string, pins []Pin) []string {
	var issues []string
	seen := make(map[string]bool, len(pins))
	for i, pin := range pins {
		if pin.Name == "" {
			issues = append(issues, fmt.Sprintf("%s[%d]: name is required", section, i))
		} else if seen[pin.Name] {
			issues = append(issues, fmt.Sprintf("%s[%d]: duplicate pin name %q", section, i, pin.Name))
		}
		seen[pin.Name] = true

		if !pinTypes[pin.Type] {
			issues = append(issues, fmt.Sprintf("%s[%d]: unknown pin type %q (expected text, json, stream, file or image)", section, i, pin.Type))
		}
	}
	return issues
}

package config

import (
	"bytes"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	if c.BBCode.Commands != nil {
		clone.BBCode.Commands = make(map[string]CommandConfig, len(c.BBCode.Commands))
		maps.Copy(clone.BBCode.Commands, c.BBCode.Commands)
	}
	if c.BBCode.Environments != nil {
		clone.BBCode.Environments = make(map[string]EnvironmentConfig, len(c.BBCode.Environments))
		maps.Copy(clone.BBCode.Environments, c.BBCode.Environments)
	}
	if c.Asymptote.Signature != nil {
		sig := *c.Asymptote.Signature
		clone.Asymptote.Signature = &sig
	}

	return &clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}

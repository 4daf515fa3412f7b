package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every option with its default value.
	// If false, generates a commented minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

const minimalTemplate = `# markconv configuration
# See: https://github.com/yaklabco/markconv

# Fail on constructs that have no target-dialect equivalent
# strict: false

# LaTeX to BBCode
bbcode:
  inline_math: "[tex]{body}[/tex]"
  display_math: "[tex]\\displaystyle {body}[/tex]"
  # keep_comments: false
  # commands:
  #   textsc:
  #     content: true
  #     open: "[size=90]"
  #     close: "[/size]"
  # environments:
  #   theorem:
  #     open: "[b]Theorem.[/b] "
  #     close: ""

# GeoGebra cleaner and macro translator header
asymptote:
  font_size: 10
  # lsf: "0.5"
  line_thickness: "1"
  dot_thickness: "3.5pt"
  size: 12cm
  # signature: true

# Markdown to BBCode
markdown:
  gfm: true
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var content []byte
	if opts.Full {
		full, err := NewConfig().ToYAMLWithHeader("# markconv configuration - Full Template\n# See: https://github.com/yaklabco/markconv")
		if err != nil {
			return nil, err
		}
		content = full
	} else {
		content = []byte(minimalTemplate)
	}

	if opts.Format == "json" {
		return templateToJSON(content)
	}
	return content, nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// templateToJSON converts a YAML template to indented JSON. Comments are lost.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var data map[string]any
	if err := yaml.Unmarshal(yamlContent, &data); err != nil {
		return nil, fmt.Errorf("parse template yaml: %w", err)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal template json: %w", err)
	}
	return append(out, '\n'), nil
}

package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markconv/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies command overrides", func(t *testing.T) {
		original := config.NewConfig()
		original.BBCode.Commands = map[string]config.CommandConfig{
			"textsc": {Content: true, Open: "[size=90]", Close: "[/size]"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)

		clone.BBCode.Commands["textsc"] = config.CommandConfig{Open: "changed"}
		assert.Equal(t, "[size=90]", original.BBCode.Commands["textsc"].Open)
	})

	t.Run("deep copies signature pointer", func(t *testing.T) {
		off := false
		original := config.NewConfig()
		original.Asymptote.Signature = &off

		clone := original.Clone()
		*clone.Asymptote.Signature = true
		assert.False(t, *original.Asymptote.Signature)
	})

	t.Run("copies CLI-only fields", func(t *testing.T) {
		original := config.NewConfig()
		original.Output = "out.txt"
		original.Diff = true

		clone := original.Clone()
		assert.Equal(t, "out.txt", clone.Output)
		assert.True(t, clone.Diff)
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.Strict = true
	original.Asymptote.LSF = "0.8"

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "strict: true")
	assert.NotContains(t, string(data), "output")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.True(t, parsed.Strict)
	assert.Equal(t, "0.8", parsed.Asymptote.LSF)
	assert.Equal(t, config.DefaultInlineMath, parsed.BBCode.InlineMath)
	assert.InDelta(t, config.DefaultFontSize, parsed.Asymptote.FontSize, 0.001)
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := config.FromYAML([]byte("strict: [unclosed"))
	require.Error(t, err)
}

func TestSignatureEnabled(t *testing.T) {
	off := false
	assert.True(t, config.AsymptoteConfig{}.SignatureEnabled())
	assert.False(t, config.AsymptoteConfig{Signature: &off}.SignatureEnabled())
}

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal template parses", func(t *testing.T) {
		content, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(content)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultInlineMath, cfg.BBCode.InlineMath)
		assert.Equal(t, "12cm", cfg.Asymptote.Size)
		assert.True(t, cfg.Markdown.GFM)
	})

	t.Run("full template has header", func(t *testing.T) {
		content, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)
		assert.Contains(t, string(content), "Full Template")
		assert.Contains(t, string(content), "dot_thickness: 3.5pt")
	})

	t.Run("json format", func(t *testing.T) {
		content, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var data map[string]any
		require.NoError(t, json.Unmarshal(content, &data))
		assert.Contains(t, data, "bbcode")
	})
}

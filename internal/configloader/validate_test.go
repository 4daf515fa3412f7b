package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markconv/pkg/config"
)

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	result := Validate(config.NewConfig())
	assert.True(t, result.Valid(), result.AllMessages())
	assert.False(t, result.HasWarnings(), result.AllMessages())
}

func TestValidate_CommandTemplates(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.BBCode.Commands = map[string]config.CommandConfig{
		"link":   {Params: 1, Content: true, Open: "[url={2}]", Close: "[/url]"},
		"ok":     {Params: 2, Open: "[url={1}]{2}[/url]"},
		"unused": {Open: "[b]{opt}", Content: true, Close: "[/b]"},
	}

	result := Validate(cfg)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bbcode.commands.link", result.Errors[0].Field)
	assert.Contains(t, result.Errors[0].Message, "{2}")

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "bbcode.commands.unused", result.Warnings[0].Field)
}

func TestValidate_EmptyNames(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.BBCode.Commands = map[string]config.CommandConfig{`\`: {}}
	cfg.BBCode.Environments = map[string]config.EnvironmentConfig{" ": {}}

	result := Validate(cfg)
	assert.Len(t, result.Errors, 2)
}

func TestValidate_Asymptote(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Asymptote.DotThickness = "3pt;\nerase()"

	result := Validate(cfg)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "asymptote", result.Errors[0].Field)
	assert.Contains(t, result.Errors[0].Message, "dot thickness")
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  ValidationError
		want string
	}{
		{"message only", ValidationError{Message: "bad"}, "bad"},
		{"field", ValidationError{Field: "log_level", Message: "bad"}, "log_level: bad"},
		{"file and line", ValidationError{FilePath: ".markconv.yml", Line: 3, Message: "bad"}, ".markconv.yml:3: bad"},
		{"file no line", ValidationError{FilePath: "c.yml", Field: "strict", Message: "bad"}, "c.yml: strict: bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestMerge_CLIFlagsOnlySetFields(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Markdown.GFM = false
	base.BBCode.Commands = map[string]config.CommandConfig{"a": {Open: "A"}}

	signature := false
	override := &config.Config{
		Asymptote: config.AsymptoteConfig{LSF: "0.4", Signature: &signature},
		BBCode: config.BBCodeConfig{
			Commands: map[string]config.CommandConfig{"b": {Open: "B"}},
		},
	}

	result := merge(base, override)
	assert.False(t, result.Markdown.GFM)
	assert.Equal(t, "0.4", result.Asymptote.LSF)
	assert.False(t, result.Asymptote.SignatureEnabled())
	assert.Len(t, result.BBCode.Commands, 2)
	assert.Len(t, base.BBCode.Commands, 1, "merge must not mutate base")
	assert.Equal(t, config.DefaultSize, result.Asymptote.Size)
}

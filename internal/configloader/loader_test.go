package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/markconv/pkg/config"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	if result.Config.BBCode.InlineMath != config.DefaultInlineMath {
		t.Errorf("expected inline math %q, got %q", config.DefaultInlineMath, result.Config.BBCode.InlineMath)
	}
	if !result.Config.Markdown.GFM {
		t.Error("expected gfm to default to true")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, ".markconv.yml", `
strict: true
bbcode:
  inline_math: "[m]{body}[/m]"
  commands:
    textsc:
      content: true
      open: "[size=90]"
      close: "[/size]"
markdown:
  gfm: false
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if !cfg.Strict {
		t.Error("expected strict from project config")
	}
	if cfg.BBCode.InlineMath != "[m]{body}[/m]" {
		t.Errorf("inline math = %q", cfg.BBCode.InlineMath)
	}
	if cfg.BBCode.DisplayMath != config.DefaultDisplayMath {
		t.Errorf("display math should keep its default, got %q", cfg.BBCode.DisplayMath)
	}
	if _, ok := cfg.BBCode.Commands["textsc"]; !ok {
		t.Error("expected textsc command override")
	}
	if cfg.Markdown.GFM {
		t.Error("explicit gfm: false should override the default")
	}
	if len(result.LoadedFrom) != 1 || result.LoadedFrom[0] != configPath {
		t.Errorf("LoadedFrom = %v, want [%s]", result.LoadedFrom, configPath)
	}
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfig(t, root, ".markconv.yml", "asymptote:\n  font_size: 12\n")

	nested := filepath.Join(root, "figures", "week1")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Asymptote.FontSize != 12 {
		t.Errorf("font size = %g, want 12", result.Config.Asymptote.FontSize)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".markconv.yml", "asymptote:\n  size: 5cm\n")
	explicit := writeConfig(t, tmpDir, "custom.yaml", "asymptote:\n  line_thickness: \"0.8\"\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Asymptote.LineThickness != "0.8" {
		t.Errorf("line thickness = %q, want 0.8", result.Config.Asymptote.LineThickness)
	}
	// An explicit config replaces project discovery.
	if result.Config.Asymptote.Size != config.DefaultSize {
		t.Errorf("size = %q, want default %q", result.Config.Asymptote.Size, config.DefaultSize)
	}
	if result.Paths.Explicit != explicit {
		t.Errorf("Paths.Explicit = %q", result.Paths.Explicit)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".markconv.yml", "asymptote:\n  font_size: 12\n  dot_thickness: 2pt\n")

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{
		Strict:    true,
		Asymptote: config.AsymptoteConfig{FontSize: 14},
		Output:    "out.asy",
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Asymptote.FontSize != 14 {
		t.Errorf("font size = %g, want 14 from CLI", cfg.Asymptote.FontSize)
	}
	if cfg.Asymptote.DotThickness != "2pt" {
		t.Errorf("dot thickness = %q, want 2pt from file", cfg.Asymptote.DotThickness)
	}
	if !cfg.Strict || cfg.Output != "out.asy" {
		t.Errorf("CLI scalars not applied: strict=%v output=%q", cfg.Strict, cfg.Output)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantField string
		wantLine  int
	}{
		{
			name:      "unknown key",
			content:   "strict: true\nflavor: gfm\n",
			wantLine:  2,
		},
		{
			name:      "bad log level",
			content:   "log_level: loud\n",
			wantField: "log_level",
		},
		{
			name:      "negative params",
			content:   "bbcode:\n  commands:\n    foo:\n      params: -1\n",
			wantField: "bbcode.commands.foo.params",
		},
		{
			name:      "zero font size",
			content:   "asymptote:\n  font_size: 0\n",
			wantField: "asymptote.font_size",
		},
		{
			name:      "header injection",
			content:   "asymptote:\n  size: \"5cm); draw((0,0)\"\n",
			wantField: "asymptote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			path := writeConfig(t, tmpDir, ".markconv.yml", tt.content)

			_, err := Load(context.Background(), isolatedOptions(tmpDir))
			if err == nil {
				t.Fatal("expected error for invalid config")
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if vErr.FilePath != path {
				t.Errorf("FilePath = %q, want %q", vErr.FilePath, path)
			}
			if tt.wantField != "" && vErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.wantField)
			}
			if tt.wantLine != 0 && vErr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (%v)", vErr.Line, tt.wantLine, vErr)
			}
		})
	}
}

func TestLoad_EmptyConfigFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".markconv.yml", "")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Asymptote.Size != config.DefaultSize {
		t.Errorf("size = %q, want default", result.Config.Asymptote.Size)
	}
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t.TempDir())
	opts.ExplicitPath = filepath.Join(t.TempDir(), "absent.yml")

	_, err := Load(context.Background(), opts)
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoad_TemplateWarning(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".markconv.yml", "bbcode:\n  inline_math: \"[tex][/tex]\"\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "{body}") {
		t.Errorf("Warnings = %v, want one {body} warning", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t.TempDir()))
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

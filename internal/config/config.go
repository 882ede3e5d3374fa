// Package config holds the immutable per-invocation settings. Values
// come from built-in defaults, an optional YAML file, then CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"subburn/internal/transcribe"
)

// Config is the full invocation configuration.
type Config struct {
	Model     string `yaml:"model"`
	ModelDir  string `yaml:"model_dir"`
	Provider  string `yaml:"provider"`
	Threads   int    `yaml:"threads"`
	OutputDir string `yaml:"output_dir"`
	OutputSRT bool   `yaml:"output_srt"`
	SRTOnly   bool   `yaml:"srt_only"`
	Task      string `yaml:"task"`
	Language  string `yaml:"language"`
	Style     Style  `yaml:"style"`
}

// Style holds the caption styling inputs. Color is the requested name,
// not the resolved hex value.
type Style struct {
	Color       string `yaml:"color"`
	FontName    string `yaml:"font_name"`
	FontSize    int    `yaml:"font_size"`
	BorderStyle int    `yaml:"border_style"`
}

// DefaultConfigPath is where Load looks when no --config flag is given.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "subburn", "config.yaml")
}

// Default returns the built-in defaults, matching the CLI flag defaults.
func Default() *Config {
	return &Config{
		Model:     "small",
		ModelDir:  transcribe.DefaultModelDir(),
		Provider:  string(transcribe.ProviderWhisper),
		OutputDir: ".",
		Task:      string(transcribe.TaskTranscribe),
		Language:  transcribe.LanguageAuto,
		Style: Style{
			Color:       "green",
			FontName:    "Arial",
			FontSize:    24,
			BorderStyle: 3,
		},
	}
}

// Load reads a YAML config file over the defaults. Missing fields keep
// their default values; a leading ~ in model_dir is expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ModelDir = expandTilde(cfg.ModelDir)

	return cfg, nil
}

// Validate checks the enumerated fields. Color is deliberately not
// validated: unknown names fall back to the default at resolve time.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model must not be empty")
	}

	if _, err := transcribe.ParseTask(c.Task); err != nil {
		return err
	}

	if err := transcribe.ValidateLanguage(c.Language); err != nil {
		return err
	}

	switch transcribe.Provider(c.Provider) {
	case transcribe.ProviderWhisper, transcribe.ProviderOpenAI:
	default:
		return fmt.Errorf("provider must be whisper or openai, got %q", c.Provider)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}

	return nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m96-chan/emojikit/internal/consts"
	"github.com/m96-chan/emojikit/internal/emoji"
)

//go:embed config.toml
var defaultConfig []byte

// Emoji document sources.
const (
	SourceBundled = "bundled"
	SourceUnicode = "unicode"
)

// Config holds the application configuration.
type Config struct {
	Mouse bool `toml:"mouse"`

	Emoji    EmojiConfig    `toml:"emoji"`
	Picker   PickerConfig   `toml:"picker"`
	Markdown MarkdownConfig `toml:"markdown"`

	Keybinds Keybinds `toml:"keybinds"`
	Theme    Theme    `toml:"theme"`
}

// EmojiConfig controls how the emoji catalog is loaded.
type EmojiConfig struct {
	AssetsPath     string            `toml:"assets_path"`
	ImagePath      string            `toml:"image_path"`
	Source         string            `toml:"source"`
	MatchPolicy    string            `toml:"match_policy"`
	Hooks          []string          `toml:"hooks"`
	HookTimeout    time.Duration     `toml:"hook_timeout"`
	Categories     map[string]string `toml:"categories"`
	CategoryLabels map[string]string `toml:"category_labels"`
}

// PickerConfig controls the emoji picker.
type PickerConfig struct {
	MaxResults      int    `toml:"max_results"`
	FrequentLimit   int    `toml:"frequent_limit"`
	DefaultCategory string `toml:"default_category"`
}

// MarkdownConfig controls message rendering.
type MarkdownConfig struct {
	Enabled     bool   `toml:"enabled"`
	SyntaxTheme string `toml:"syntax_theme"`
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, consts.Name, "config.toml")
}

// Load reads the config from the given path. If the file does not exist,
// it writes the default config and loads that. Embedded defaults are applied
// first, then the selected theme preset, then the user file on top.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(defaultConfig, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, defaultConfig, 0o600); err != nil {
			return nil, err
		}
	}

	// The preset has to be known before style overrides are decoded.
	var peek struct {
		Theme struct {
			Preset string `toml:"preset"`
		} `toml:"theme"`
	}
	if _, err := toml.DecodeFile(path, &peek); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	preset := peek.Theme.Preset
	if preset == "" {
		preset = cfg.Theme.Preset
	}
	cfg.Theme = BuiltinTheme(preset)

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyDefaults(&cfg, filepath.Dir(path))

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// applyDefaults resolves computed defaults that can't be expressed in TOML.
func applyDefaults(cfg *Config, dir string) {
	if cfg.Emoji.AssetsPath == "" {
		cfg.Emoji.AssetsPath = emoji.DefaultAssetsPath
	}
	if cfg.Emoji.Source == "" {
		cfg.Emoji.Source = SourceBundled
	}
	if cfg.Emoji.HookTimeout <= 0 {
		cfg.Emoji.HookTimeout = 10 * time.Second
	}
	if cfg.Picker.DefaultCategory == "" {
		cfg.Picker.DefaultCategory = string(emoji.CategorySmileys)
	}

	// Hook scripts and document files live next to the config file.
	for i, h := range cfg.Emoji.Hooks {
		if !filepath.IsAbs(h) {
			cfg.Emoji.Hooks[i] = filepath.Join(dir, h)
		}
	}
	if s := cfg.Emoji.Source; s != SourceBundled && s != SourceUnicode && !filepath.IsAbs(s) {
		cfg.Emoji.Source = filepath.Join(dir, s)
	}
}

// validate checks that config values are within acceptable ranges.
func validate(cfg *Config) error {
	if _, err := emoji.ParseMatchPolicy(cfg.Emoji.MatchPolicy); err != nil {
		return fmt.Errorf("match_policy: %w", err)
	}
	if cfg.Picker.MaxResults < 1 || cfg.Picker.MaxResults > 500 {
		return fmt.Errorf("max_results must be between 1 and 500, got %d", cfg.Picker.MaxResults)
	}
	if cfg.Picker.FrequentLimit < 0 || cfg.Picker.FrequentLimit > 100 {
		return fmt.Errorf("frequent_limit must be between 0 and 100, got %d", cfg.Picker.FrequentLimit)
	}
	return nil
}

// MatchPolicy returns the parsed match policy. Load has already validated it.
func (c *Config) MatchPolicy() emoji.MatchPolicy {
	p, _ := emoji.ParseMatchPolicy(c.Emoji.MatchPolicy)
	return p
}

// Categories returns the picker categories with configured overrides.
func (c *Config) Categories(extra ...string) []emoji.Category {
	return emoji.Categories(c.Emoji.Categories, c.Emoji.CategoryLabels, extra...)
}

package config

import (
	"testing"

	"github.com/BurntSushi/toml"
)

func TestMakeStyle_Tag(t *testing.T) {
	tests := []struct {
		name string
		fg   string
		bg   string
		attr string
		want string
	}{
		{"fg only", "green", "", "", "[green]"},
		{"fg+attr", "green", "", "b", "[green:-:b]"},
		{"fg+bg+attr", "green", "black", "b", "[green:black:b]"},
		{"fg+bg", "white", "blue", "", "[white:blue:-]"},
		{"empty", "", "", "", "[-]"},
		{"attr only", "", "", "d", "[-:-:d]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := makeStyle(tt.fg, tt.bg, tt.attr)
			got := s.Tag()
			if got != tt.want {
				t.Errorf("makeStyle(%q,%q,%q).Tag() = %q, want %q", tt.fg, tt.bg, tt.attr, got, tt.want)
			}
		})
	}
}

func TestStyleWrapper_Reset(t *testing.T) {
	tests := []struct {
		name string
		fg   string
		bg   string
		attr string
		want string
	}{
		{"fg only", "green", "", "", "[-]"},
		{"fg+attr", "green", "", "b", "[-::-]"},
		{"fg+bg+attr", "green", "black", "b", "[-:-:-]"},
		{"empty", "", "", "", "[-]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := makeStyle(tt.fg, tt.bg, tt.attr)
			got := s.Reset()
			if got != tt.want {
				t.Errorf("Reset() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttrsToTviewString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"bold", "b"},
		{"bold|underline", "bu"},
		{"dim|italic", "di"},
		{"bold|italic|underline|dim|reverse|blink|strikethrough", "biudrls"},
		{"", ""},
		{"none", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := attrsToTviewString(tt.input)
			if got != tt.want {
				t.Errorf("attrsToTviewString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStyleWrapper_UnmarshalTOML(t *testing.T) {
	var doc struct {
		Style StyleWrapper `toml:"style"`
	}
	data := `[style]
foreground = "red"
attributes = "bold|underline"
`
	if err := toml.Unmarshal([]byte(data), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := doc.Style.Tag(); got != "[red:-:bu]" {
		t.Errorf("Tag() = %q, want [red:-:bu]", got)
	}
}

func TestStyleWrapper_UnmarshalTOMLRejectsUnknownAttribute(t *testing.T) {
	var doc struct {
		Style StyleWrapper `toml:"style"`
	}
	data := `[style]
attributes = "sparkly"
`
	if err := toml.Unmarshal([]byte(data), &doc); err == nil {
		t.Error("expected error for unknown attribute")
	}
}

func TestBuiltinTheme_Default(t *testing.T) {
	theme := BuiltinTheme("default")
	if theme.Preset != "default" {
		t.Errorf("expected preset=default, got %q", theme.Preset)
	}
	if theme.Picker.ActiveCategory.Tag() != "[yellow:-:bu]" {
		t.Errorf("active category tag = %q, want [yellow:-:bu]", theme.Picker.ActiveCategory.Tag())
	}
	if theme.Markdown.Link.Tag() != "[green:-:u]" {
		t.Errorf("link tag = %q, want [green:-:u]", theme.Markdown.Link.Tag())
	}
}

func TestBuiltinTheme_UnknownFallsBackToDefault(t *testing.T) {
	theme := BuiltinTheme("nonexistent")
	def := BuiltinTheme("default")
	if theme.Preset != "default" {
		t.Errorf("preset = %q, want default", theme.Preset)
	}
	if theme.Markdown.Link.Tag() != def.Markdown.Link.Tag() {
		t.Error("unknown preset should fall back to default")
	}
}

func TestBuiltinTheme_AllPresetsPopulated(t *testing.T) {
	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			theme := BuiltinTheme(name)
			if theme.Preset != name {
				t.Errorf("preset = %q, want %q", theme.Preset, name)
			}
			if theme.Picker.Shortname.Tag() == "[-]" {
				t.Error("shortname tag should not be empty default")
			}
			if theme.Markdown.CustomEmoji.Tag() == "[-]" {
				t.Error("custom emoji tag should not be empty default")
			}
		})
	}
}

func TestMakeStyle_ForegroundBackground(t *testing.T) {
	s := makeStyle("green", "blue", "b")
	if s.Foreground() == 0 {
		t.Error("foreground should be set")
	}
	if s.Background() == 0 {
		t.Error("background should be set")
	}
}

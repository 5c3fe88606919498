package cmd

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the command tree with a fresh config and log file.
func execute(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if config != "" {
		if err := os.WriteFile(cfgPath, []byte(config), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{
		"--config-path", cfgPath,
		"--log-path", filepath.Join(dir, "test.log"),
	}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestList_Category(t *testing.T) {
	out, err := execute(t, "", "list", "--category", "custom")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 custom emoji, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(out, ":converse:") || !strings.Contains(out, "/dist/images/custom_emojis/") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestList_UnknownCategory(t *testing.T) {
	if _, err := execute(t, "", "list", "-c", "nope"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestList_JSONSortedAndCorrected(t *testing.T) {
	out, err := execute(t, "[emoji]\nassets_path = \"/static/\"\n", "list", "--json")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var defs []struct {
		Shortname string `json:"sn"`
		URL       string `json:"url"`
	}
	if err := json.Unmarshal([]byte(out), &defs); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	for i := 1; i < len(defs); i++ {
		if defs[i].Shortname < defs[i-1].Shortname {
			t.Fatalf("not sorted: %q before %q", defs[i-1].Shortname, defs[i].Shortname)
		}
	}
	for _, d := range defs {
		if d.Shortname == ":converse:" && !strings.HasPrefix(d.URL, "/static/") {
			t.Errorf(":converse: URL = %q", d.URL)
		}
	}
}

func TestRender(t *testing.T) {
	out, err := execute(t, "", "render", "--plain", "nice", ":thumbsup:")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.TrimSpace(out); got != "nice \U0001F44D" {
		t.Errorf("render = %q", got)
	}
}

func TestMatch(t *testing.T) {
	out, err := execute(t, "", "match", "a :+1: b")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if got := strings.TrimSpace(out); got != "2\t6\t:+1:\t:+1:" {
		t.Errorf("match = %q", got)
	}
}

func TestMatch_Pattern(t *testing.T) {
	out, err := execute(t, "", "match", "--pattern", "x")
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if !strings.Contains(out, `:\+1:`) {
		t.Errorf("pattern should escape '+': %q", out)
	}
}

func TestCategories_Labels(t *testing.T) {
	out, err := execute(t, "[emoji.category_labels]\ncustom = \"Memes\"\n", "categories")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 categories, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "smileys") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[9], "Memes") {
		t.Errorf("last line = %q, want custom label Memes", lines[9])
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := execute(t, "[picker]\nmax_results = 0\n", "list"); err == nil {
		t.Error("expected config validation error")
	}
}

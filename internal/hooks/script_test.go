package hooks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m96-chan/emojikit/internal/emoji"
)

func testDoc() emoji.Document {
	return emoji.Document{
		"smileys": {":smile:": {Shortname: ":smile:", Codepoint: "1f604", Category: "smileys"}},
		"custom":  {":converse:": {Shortname: ":converse:", URL: "/dist/converse.png", Category: "custom"}},
	}
}

func mustCompile(t *testing.T, src string) *Script {
	t.Helper()
	s, err := Compile("test.js", src, time.Second)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return s
}

func TestScript_ModifiesDocument(t *testing.T) {
	s := mustCompile(t, `
		function loadEmojis(context, json) {
			json.custom[":my_emoji:"] = {sn: ":my_emoji:", url: "https://example.com/my.png", c: "custom"};
			delete json.custom[":converse:"];
			return json;
		}
	`)

	out, err := s.LoadEmojis(context.Background(), testDoc())
	if err != nil {
		t.Fatalf("LoadEmojis: %v", err)
	}
	if _, ok := out["custom"][":converse:"]; ok {
		t.Error(":converse: should have been deleted")
	}
	mine, ok := out["custom"][":my_emoji:"]
	if !ok {
		t.Fatal(":my_emoji: missing")
	}
	if mine.URL != "https://example.com/my.png" {
		t.Errorf("URL = %q", mine.URL)
	}
	if out["smileys"][":smile:"].Codepoint != "1f604" {
		t.Error("untouched entries should survive the round trip")
	}
}

func TestScript_UndefinedKeepsDocument(t *testing.T) {
	for _, src := range []string{
		`function loadEmojis(context, json) {}`,
		`function loadEmojis(context, json) { return null; }`,
	} {
		s := mustCompile(t, src)
		out, err := s.LoadEmojis(context.Background(), testDoc())
		if err != nil {
			t.Fatalf("LoadEmojis: %v", err)
		}
		if out != nil {
			t.Errorf("expected nil document for %q, got %v", src, out)
		}
	}
}

func TestScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"throws", `function loadEmojis() { throw new Error("nope"); }`, "nope"},
		{"missing entry point", `var x = 1;`, "does not define loadEmojis"},
		{"wrong shape", `function loadEmojis() { return 5; }`, "invalid emoji document"},
		{"category not a map", `function loadEmojis() { return {smileys: "x"}; }`, "invalid emoji document"},
		{"not json", `function loadEmojis() { return function () {}; }`, "not JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustCompile(t, tt.src)
			_, err := s.LoadEmojis(context.Background(), testDoc())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestScript_WrongShapeIsInvalidDocument(t *testing.T) {
	s := mustCompile(t, `function loadEmojis() { return [1, 2]; }`)
	_, err := s.LoadEmojis(context.Background(), testDoc())
	if !errors.Is(err, emoji.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestScript_Timeout(t *testing.T) {
	s, err := Compile("loop.js", `function loadEmojis() { for (;;) {} }`, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.LoadEmojis(context.Background(), testDoc())
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestScript_ContextCancel(t *testing.T) {
	s := mustCompile(t, `function loadEmojis() { for (;;) {} }`)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := s.LoadEmojis(ctx, testDoc())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestCompile_SyntaxError(t *testing.T) {
	if _, err := Compile("bad.js", `function loadEmojis( {`, 0); err == nil {
		t.Error("expected syntax error")
	}
}

func TestScript_ConsoleAvailable(t *testing.T) {
	s := mustCompile(t, `function loadEmojis(ctx, json) { console.log("loading", Object.keys(json).length); return json; }`)
	if _, err := s.LoadEmojis(context.Background(), testDoc()); err != nil {
		t.Errorf("LoadEmojis: %v", err)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.js")
	b := filepath.Join(dir, "b.js")
	if err := os.WriteFile(a, []byte(`function loadEmojis(c, j) { j.smileys[":a:"] = {sn: ":a:", cp: "1f600"}; return j; }`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte(`function loadEmojis(c, j) { delete j.smileys[":smile:"]; return j; }`), 0o600); err != nil {
		t.Fatal(err)
	}

	hs, err := LoadFiles([]string{a, b}, time.Second)
	if err != nil {
		t.Fatalf("LoadFiles: %v", err)
	}
	if len(hs) != 2 {
		t.Fatalf("got %d hooks, want 2", len(hs))
	}
	if name := hs[0].(*Script).Name(); name != "a.js" {
		t.Errorf("name = %q, want a.js", name)
	}

	if _, err := LoadFiles([]string{filepath.Join(dir, "missing.js")}, 0); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestScript_DrivesCatalog(t *testing.T) {
	s := mustCompile(t, `
		function loadEmojis(context, json) {
			delete json.smileys[":smile:"];
			json.smileys[":grin:"] = {sn: ":grin:", cp: "1f601", c: "smileys"};
			return json;
		}
	`)
	loader := emoji.LoaderFunc(func(context.Context) (emoji.Document, error) { return testDoc(), nil })
	c := emoji.New(emoji.Options{Loader: loader, Hooks: []emoji.Hook{s}, AssetsPath: "/assets"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Initialize(ctx).Wait(ctx); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	snap, err := c.Snapshot()
	if err != nil {
		t.Fatal(err)
	}

	got := snap.Shortnames()
	want := []string{":converse:", ":grin:"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("shortnames = %v, want %v", got, want)
	}
	if d, _ := snap.Lookup(":converse:"); d.URL != "/assets/converse.png" {
		t.Errorf("path correction should follow the hook, got %q", d.URL)
	}
}

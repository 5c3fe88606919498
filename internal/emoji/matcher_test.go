package emoji

import (
	"strings"
	"testing"
)

func sortedDefs(names ...string) []Definition {
	defs := make([]Definition, len(names))
	for i, n := range names {
		defs[i] = Definition{Shortname: n, Codepoint: "1f600"}
	}
	return defs
}

func TestParseMatchPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    MatchPolicy
		wantErr bool
	}{
		{"", MatchFirstListed, false},
		{"first", MatchFirstListed, false},
		{"LONGEST", MatchLongest, false},
		{"shortest", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMatchPolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMatchPolicy(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatcher_PrefixShadowing(t *testing.T) {
	defs := sortedDefs(":a:", ":a:b:")

	first, err := NewMatcher(defs, MatchFirstListed)
	if err != nil {
		t.Fatal(err)
	}
	got := first.FindAll("x :a:b: y")
	if len(got) != 1 || got[0].Definition.Shortname != ":a:" {
		t.Errorf("first-listed: got %+v, want :a:", got)
	}

	longest, err := NewMatcher(defs, MatchLongest)
	if err != nil {
		t.Fatal(err)
	}
	got = longest.FindAll("x :a:b: y")
	if len(got) != 1 || got[0].Definition.Shortname != ":a:b:" {
		t.Errorf("longest: got %+v, want :a:b:", got)
	}
}

func TestMatcher_SubstringNotWordBoundary(t *testing.T) {
	m, err := NewMatcher(sortedDefs(":smile:"), MatchFirstListed)
	if err != nil {
		t.Fatal(err)
	}
	got := m.FindAll("abc:smile:def")
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Start != 3 || got[0].End != 10 {
		t.Errorf("offsets = %d..%d, want 3..10", got[0].Start, got[0].End)
	}
}

func TestMatcher_MetacharactersAreLiteral(t *testing.T) {
	m, err := NewMatcher(sortedDefs(":a.b:", ":c*:", ":+1:"), MatchFirstListed)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		text string
		want bool
	}{
		{":a.b:", true},
		{":axb:", false},
		{":c*:", true},
		{":ccc:", false},
		{":+1:", true},
		{":1:", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := m.MatchString(tt.text); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMatcher_ReplaceAll(t *testing.T) {
	m, err := NewMatcher(sortedDefs(":smile:", ":wave:"), MatchFirstListed)
	if err != nil {
		t.Fatal(err)
	}
	got := m.ReplaceAll("hi :Wave: and :smile:", func(d Definition) string {
		return "<" + strings.Trim(d.Shortname, ":") + ">"
	})
	want := "hi <wave> and <smile>"
	if got != want {
		t.Errorf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestMatcher_Empty(t *testing.T) {
	m, err := NewMatcher(nil, MatchFirstListed)
	if err != nil {
		t.Fatal(err)
	}
	if m.MatchString("anything :smile:") {
		t.Error("empty matcher should match nothing")
	}
	if m.FindAll("x") != nil {
		t.Error("empty matcher FindAll should be nil")
	}
	if got := m.ReplaceAll("keep", func(Definition) string { return "" }); got != "keep" {
		t.Errorf("ReplaceAll = %q, want keep", got)
	}
	if m.Regexp() != nil {
		t.Error("empty matcher should have no regexp")
	}
}

package emoji

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchPolicy selects how overlapping shortnames are resolved at a given
// text position.
type MatchPolicy int

const (
	// MatchFirstListed tries shortnames in sorted order and takes the first
	// that matches, so ":a:" would win over a later ":a:b:" at the same
	// position if it were a prefix of it.
	MatchFirstListed MatchPolicy = iota
	// MatchLongest takes the longest shortname matching at a position.
	MatchLongest
)

// ParseMatchPolicy parses "first" or "longest". Empty means first.
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(s) {
	case "", "first":
		return MatchFirstListed, nil
	case "longest":
		return MatchLongest, nil
	default:
		return 0, fmt.Errorf("unknown match policy %q", s)
	}
}

func (p MatchPolicy) String() string {
	if p == MatchLongest {
		return "longest"
	}
	return "first"
}

// Match is one shortname occurrence in a text.
type Match struct {
	Definition Definition
	Text       string // the matched text as it appears in the input
	Start, End int    // byte offsets
}

// Matcher finds known shortnames inside arbitrary text. Matching is a
// case-insensitive literal substring match; it is not word-boundary aware.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	re     *regexp.Regexp
	lookup map[string]Definition // lowercased shortname → definition
}

// NewMatcher compiles a matcher for defs, keeping their order in the
// alternation.
func NewMatcher(defs []Definition, policy MatchPolicy) (*Matcher, error) {
	m := &Matcher{lookup: make(map[string]Definition, len(defs))}
	if len(defs) == 0 {
		return m, nil
	}

	parts := make([]string, 0, len(defs))
	for _, d := range defs {
		parts = append(parts, regexp.QuoteMeta(d.Shortname))
		key := strings.ToLower(d.Shortname)
		if _, ok := m.lookup[key]; !ok {
			m.lookup[key] = d
		}
	}

	re, err := regexp.Compile("(?i)" + strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("compiling shortname matcher: %w", err)
	}
	if policy == MatchLongest {
		re.Longest()
	}
	m.re = re
	return m, nil
}

// Regexp returns the compiled pattern, or nil for an empty catalog.
func (m *Matcher) Regexp() *regexp.Regexp {
	return m.re
}

// MatchString reports whether text contains any known shortname.
func (m *Matcher) MatchString(text string) bool {
	return m.re != nil && m.re.MatchString(text)
}

// FindAll returns all non-overlapping shortname occurrences in text.
func (m *Matcher) FindAll(text string) []Match {
	if m.re == nil {
		return nil
	}
	locs := m.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]Match, 0, len(locs))
	for _, loc := range locs {
		s := text[loc[0]:loc[1]]
		out = append(out, Match{
			Definition: m.lookup[strings.ToLower(s)],
			Text:       s,
			Start:      loc[0],
			End:        loc[1],
		})
	}
	return out
}

// ReplaceAll replaces every shortname occurrence with the result of fn.
func (m *Matcher) ReplaceAll(text string, fn func(Definition) string) string {
	if m.re == nil {
		return text
	}
	return m.re.ReplaceAllStringFunc(text, func(s string) string {
		return fn(m.lookup[strings.ToLower(s)])
	})
}

package keys

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Normalize converts tcell key names to the config format.
// tcell outputs "Ctrl-C" (hyphen) for bare Ctrl keys but config uses "Ctrl+C" (plus).
func Normalize(name string) string {
	return strings.ReplaceAll(name, "Ctrl-", "Ctrl+")
}

// aliases maps alternative spellings accepted in config to tcell names.
var aliases = map[string]string{
	"Escape": "Esc",
	"Return": "Enter",
}

// Canonical returns the tcell spelling of a configured binding.
func Canonical(binding string) string {
	if a, ok := aliases[binding]; ok {
		return a
	}
	return binding
}

// Matches reports whether event triggers the configured binding. An empty
// binding never matches.
func Matches(event *tcell.EventKey, binding string) bool {
	if binding == "" || event == nil {
		return false
	}
	return Normalize(event.Name()) == Canonical(binding)
}

package keys

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ctrl-C", "Ctrl+C"},
		{"Ctrl-T", "Ctrl+T"},
		{"Rune[j]", "Rune[j]"},
		{"Enter", "Enter"},
		{"Ctrl-Shift-A", "Ctrl+Shift-A"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		event   *tcell.EventKey
		binding string
		want    bool
	}{
		{"ctrl", tcell.NewEventKey(tcell.KeyCtrlT, 0, tcell.ModCtrl), "Ctrl+T", true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter", true},
		{"escape alias", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape", true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "Tab", true},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), "Rune[j]", true},
		{"mismatch", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), "Rune[j]", false},
		{"empty binding", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "", false},
		{"nil event", nil, "Enter", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.event, tt.binding); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.binding, got, tt.want)
			}
		})
	}
}

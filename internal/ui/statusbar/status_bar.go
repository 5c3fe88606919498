// Package statusbar implements the one-line status bar under the picker.
package statusbar

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/m96-chan/emojikit/internal/config"
)

// StatusBar displays catalog status and the last action at the bottom.
type StatusBar struct {
	*tview.TextView
	cfg          *config.Config
	catalogText  string
	messageText  string
	clipboardOff bool
}

// New creates a themed status bar.
func New(cfg *config.Config) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(false)

	_, bg, _ := cfg.Theme.StatusBar.Background.Style.Decompose()
	fg, _, _ := cfg.Theme.StatusBar.Text.Style.Decompose()
	tv.SetBackgroundColor(bg)
	tv.SetTextColor(fg)

	return &StatusBar{
		TextView: tv,
		cfg:      cfg,
	}
}

// SetLoading shows that the catalog is being loaded.
func (sb *StatusBar) SetLoading() {
	sb.catalogText = "loading emoji..."
	sb.render()
}

// SetCatalog shows the catalog size.
func (sb *StatusBar) SetCatalog(entries, categories int) {
	sb.catalogText = fmt.Sprintf("%d emoji in %d categories", entries, categories)
	sb.render()
}

// SetError shows a catalog failure.
func (sb *StatusBar) SetError(err error) {
	sb.catalogText = "error: " + err.Error()
	sb.render()
}

// SetClipboardAvailable records whether picks can be copied.
func (sb *StatusBar) SetClipboardAvailable(ok bool) {
	sb.clipboardOff = !ok
	sb.render()
}

// SetMessage shows a transient message such as the last copied emoji.
func (sb *StatusBar) SetMessage(s string) {
	sb.messageText = s
	sb.render()
}

// render rebuilds the status bar text from current state.
func (sb *StatusBar) render() {
	text := " " + sb.catalogText
	if sb.clipboardOff {
		text += "  |  no clipboard"
	}
	if sb.messageText != "" {
		text += "  |  " + sb.messageText
	}
	sb.TextView.SetText(text)
}

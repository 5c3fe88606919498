// Package picker implements the emoji picker: a category bar, a fuzzy
// search input and the list of matching emoji.
package picker

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sahilm/fuzzy"

	"github.com/m96-chan/emojikit/internal/config"
	"github.com/m96-chan/emojikit/internal/emoji"
	"github.com/m96-chan/emojikit/internal/markdown"
	"github.com/m96-chan/emojikit/internal/store"
	"github.com/m96-chan/emojikit/internal/ui"
	"github.com/m96-chan/emojikit/internal/ui/keys"
)

// FrequentCategory is the pseudo-category holding recently used emoji. It
// is shown first when there is any usage.
const FrequentCategory = "frequent"

const defaultMaxResults = 50

// OnSelectFunc is called when the user picks an emoji.
type OnSelectFunc func(def emoji.Definition)

// Picker is the emoji picker component.
type Picker struct {
	*tview.Flex
	cfg      *config.Config
	mdColors markdown.MarkdownColors

	bar     *tview.TextView
	input   *tview.InputField
	list    *tview.List
	preview *tview.TextView

	snap       *emoji.Snapshot
	categories []emoji.Category
	toned      map[string]bool // base shortnames that have tone variants
	frequent   []string

	state store.PickerState
	shown []emoji.Definition

	onSelect OnSelectFunc
	onClose  func()
}

// New creates an empty picker. Call SetSnapshot before use.
func New(cfg *config.Config) *Picker {
	p := &Picker{
		cfg:      cfg,
		mdColors: ui.MarkdownColors(cfg.Theme.Markdown),
		state:    store.DefaultPickerState(),
		toned:    make(map[string]bool),
	}

	p.bar = tview.NewTextView()
	p.bar.SetDynamicColors(true)
	p.bar.SetWrap(false)

	p.input = tview.NewInputField()
	p.input.SetLabel(" Search: ")
	p.input.SetFieldBackgroundColor(cfg.Theme.Picker.InputBackground.Background())
	p.input.SetChangedFunc(func(string) { p.rebuild() })
	p.input.SetInputCapture(p.handleInput)

	p.list = tview.NewList()
	p.list.SetHighlightFullLine(true)
	p.list.ShowSecondaryText(false)
	p.list.SetWrapAround(false)
	p.list.SetSelectedStyle(cfg.Theme.Picker.Selected.Style)
	p.list.SetChangedFunc(func(index int, _, _ string, _ rune) {
		p.state.ScrollPosition = index
		p.renderPreview()
	})

	p.preview = tview.NewTextView()
	p.preview.SetDynamicColors(true)

	p.Flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(p.bar, 1, 0, false).
		AddItem(p.input, 1, 0, true).
		AddItem(p.list, 0, 1, false).
		AddItem(p.preview, 2, 0, false)
	p.SetBorder(true).SetTitle(" Emoji ")
	p.SetBorderColor(cfg.Theme.Border.Focused.Foreground())
	p.SetTitleColor(cfg.Theme.Title.Focused.Foreground())

	return p
}

// SetOnSelect sets the callback for emoji selection.
func (p *Picker) SetOnSelect(fn OnSelectFunc) {
	p.onSelect = fn
}

// SetOnClose sets the callback for closing the picker.
func (p *Picker) SetOnClose(fn func()) {
	p.onClose = fn
}

// SetSnapshot replaces the catalog the picker shows.
func (p *Picker) SetSnapshot(snap *emoji.Snapshot) {
	p.snap = snap

	present := snap.Categories()
	var extra []string
	for _, name := range present {
		if !emoji.IsBuiltinCategory(name) {
			extra = append(extra, name)
		}
	}
	p.categories = p.categories[:0]
	for _, c := range p.cfg.Categories(extra...) {
		if slices.Contains(present, string(c.Name)) {
			p.categories = append(p.categories, c)
		}
	}

	clear(p.toned)
	for _, sn := range snap.Shortnames() {
		if emoji.SkinTone(sn) != "" {
			p.toned[emoji.BaseShortname(sn)] = true
		}
	}

	p.fixCategory()
	p.rebuild()
}

// SetFrequent sets the shortnames of the frequent row, most used first.
func (p *Picker) SetFrequent(shortnames []string) {
	p.frequent = slices.Clone(shortnames)
	p.fixCategory()
	p.rebuild()
}

// SetState restores a persisted picker state.
func (p *Picker) SetState(state store.PickerState) {
	pos := state.ScrollPosition
	p.state = state
	p.fixCategory()
	p.rebuild()
	if pos > 0 && pos < p.list.GetItemCount() {
		p.list.SetCurrentItem(pos)
	}
}

// State returns the state to persist.
func (p *Picker) State() store.PickerState {
	return p.state
}

// Reset clears the search input.
func (p *Picker) Reset() {
	p.input.SetText("")
	p.rebuild()
}

// Visible returns the emoji currently listed.
func (p *Picker) Visible() []emoji.Definition {
	return slices.Clone(p.shown)
}

// tabs returns the category bar entries, frequent first when present.
func (p *Picker) tabs() []emoji.Category {
	if len(p.frequent) == 0 {
		return p.categories
	}
	tabs := make([]emoji.Category, 0, len(p.categories)+1)
	tabs = append(tabs, emoji.Category{Name: FrequentCategory, Emoji: p.frequent[0], Label: "Frequently used"})
	return append(tabs, p.categories...)
}

// fixCategory moves the current category to a valid tab.
func (p *Picker) fixCategory() {
	tabs := p.tabs()
	if len(tabs) == 0 {
		return
	}
	for _, c := range tabs {
		if string(c.Name) == p.state.CurrentCategory {
			return
		}
	}
	def := p.cfg.Picker.DefaultCategory
	for _, c := range tabs {
		if string(c.Name) == def {
			p.state.CurrentCategory = def
			return
		}
	}
	p.state.CurrentCategory = string(tabs[0].Name)
}

// CycleCategory moves delta tabs forward (or back when negative) and
// clears the search.
func (p *Picker) CycleCategory(delta int) {
	tabs := p.tabs()
	if len(tabs) == 0 {
		return
	}
	cur := slices.IndexFunc(tabs, func(c emoji.Category) bool { return string(c.Name) == p.state.CurrentCategory })
	next := ((cur+delta)%len(tabs) + len(tabs)) % len(tabs)
	p.state.CurrentCategory = string(tabs[next].Name)
	p.state.ScrollPosition = 0
	p.input.SetText("")
	p.rebuild()
}

// CycleSkinTone switches to the next skin tone.
func (p *Picker) CycleSkinTone() {
	i := slices.Index(emoji.SkinTones, p.state.CurrentSkinTone)
	p.state.CurrentSkinTone = emoji.SkinTones[(i+1)%len(emoji.SkinTones)]
	p.rebuild()
}

// Hidden reports whether shortname is filtered out by the skin tone: toned
// variants show only for the matching tone, and base shortnames that have
// variants hide while a tone is active.
func Hidden(shortname, tone string, toned map[string]bool) bool {
	if t := emoji.SkinTone(shortname); t != "" {
		return t != tone
	}
	return tone != "" && toned[shortname]
}

// rebuild recomputes the listed emoji from the search text, the current
// category and the skin tone.
func (p *Picker) rebuild() {
	p.shown = p.shown[:0]
	if p.snap != nil {
		if query := strings.ToLower(strings.TrimSpace(p.input.GetText())); query != "" {
			p.shown = p.search(query)
		} else {
			p.shown = p.inCategory(p.state.CurrentCategory)
		}
	}

	p.list.Clear()
	tag := p.cfg.Theme.Picker.Shortname.Tag()
	reset := p.cfg.Theme.Picker.Shortname.Reset()
	for _, d := range p.shown {
		display := fmt.Sprintf("%s  %s%s%s", markdown.EmojiText(d, p.mdColors), tag, tview.Escape(d.Shortname), reset)
		p.list.AddItem(display, "", 0, nil)
	}
	if p.list.GetItemCount() > 0 {
		p.list.SetCurrentItem(0)
	}
	p.state.ScrollPosition = 0
	p.renderBar()
	p.renderPreview()
}

func (p *Picker) inCategory(name string) []emoji.Definition {
	if name == FrequentCategory {
		out := make([]emoji.Definition, 0, len(p.frequent))
		for _, sn := range p.frequent {
			if d, ok := p.snap.Lookup(sn); ok {
				out = append(out, d)
			}
		}
		return out
	}
	var out []emoji.Definition
	for _, d := range p.snap.InCategory(name) {
		if !Hidden(d.Shortname, p.state.CurrentSkinTone, p.toned) {
			out = append(out, d)
		}
	}
	return out
}

func (p *Picker) search(query string) []emoji.Definition {
	var candidates []emoji.Definition
	for _, d := range p.snap.List() {
		if !Hidden(d.Shortname, p.state.CurrentSkinTone, p.toned) {
			candidates = append(candidates, d)
		}
	}
	targets := make([]string, len(candidates))
	for i, d := range candidates {
		targets[i] = d.Shortname
	}

	matches := fuzzy.Find(query, targets)

	limit := p.cfg.Picker.MaxResults
	if limit <= 0 {
		limit = defaultMaxResults
	}
	n := min(len(matches), limit)
	out := make([]emoji.Definition, n)
	for i := 0; i < n; i++ {
		out[i] = candidates[matches[i].Index]
	}
	return out
}

// renderBar draws the category tabs and the skin tone indicator.
func (p *Picker) renderBar() {
	var b strings.Builder
	theme := p.cfg.Theme.Picker
	for _, c := range p.tabs() {
		icon := c.Emoji
		if p.snap != nil {
			if d, ok := p.snap.Lookup(c.Emoji); ok {
				icon = markdown.EmojiText(d, p.mdColors)
			}
		}
		if string(c.Name) == p.state.CurrentCategory {
			fmt.Fprintf(&b, " %s%s %s%s", theme.ActiveCategory.Tag(), icon, tview.Escape(c.Label), theme.ActiveCategory.Reset())
		} else {
			fmt.Fprintf(&b, " %s%s%s", theme.Category.Tag(), icon, theme.Category.Reset())
		}
	}
	tone := p.state.CurrentSkinTone
	if tone == "" {
		tone = "default"
	}
	fmt.Fprintf(&b, "  skin: %s", tone)
	p.bar.SetText(b.String())
}

// renderPreview shows details of the highlighted emoji.
func (p *Picker) renderPreview() {
	cur := p.list.GetCurrentItem()
	if cur < 0 || cur >= len(p.shown) {
		p.preview.SetText("")
		return
	}
	d := p.shown[cur]
	text := fmt.Sprintf(" %s %s  [::d]%s[::-]\n [::d]%s[::-]",
		markdown.EmojiText(d, p.mdColors),
		tview.Escape(d.Shortname),
		tview.Escape(d.Category),
		tview.Escape(d.ImageURL(p.cfg.Emoji.ImagePath)))
	p.preview.SetText(text)
}

// handleInput processes keybindings for the picker input field.
func (p *Picker) handleInput(event *tcell.EventKey) *tcell.EventKey {
	kb := p.cfg.Keybinds.Picker

	switch {
	case keys.Matches(event, kb.Close):
		p.close()
		return nil

	case keys.Matches(event, kb.Select):
		p.selectCurrent()
		return nil

	case keys.Matches(event, kb.Up):
		if cur := p.list.GetCurrentItem(); cur > 0 {
			p.list.SetCurrentItem(cur - 1)
		}
		return nil

	case keys.Matches(event, kb.Down):
		if cur := p.list.GetCurrentItem(); cur < p.list.GetItemCount()-1 {
			p.list.SetCurrentItem(cur + 1)
		}
		return nil

	case keys.Matches(event, kb.NextCategory):
		p.CycleCategory(1)
		return nil

	case keys.Matches(event, kb.PrevCategory):
		p.CycleCategory(-1)
		return nil

	case keys.Matches(event, kb.NextSkinTone):
		p.CycleSkinTone()
		return nil
	}

	return event
}

// selectCurrent selects the currently highlighted emoji.
func (p *Picker) selectCurrent() {
	cur := p.list.GetCurrentItem()
	if cur < 0 || cur >= len(p.shown) {
		return
	}
	def := p.shown[cur]
	if p.onSelect != nil {
		p.onSelect(def)
	}
	p.close()
}

// close signals the picker should be hidden.
func (p *Picker) close() {
	if p.onClose != nil {
		p.onClose()
	}
}

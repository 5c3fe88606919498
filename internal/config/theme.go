package config

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// StyleWrapper wraps tcell.Style and implements TOML unmarshalling.
// In TOML it is represented as a table with optional "foreground",
// "background", and "attributes" string fields. The original strings are
// kept so the style can be rendered as a tview color tag.
type StyleWrapper struct {
	tcell.Style
	fg, bg, attrs string // attrs in tview letters, e.g. "bu"
}

// makeStyle builds a StyleWrapper from color names and tview attribute
// letters.
func makeStyle(fg, bg, attrs string) StyleWrapper {
	style := tcell.StyleDefault
	if fg != "" {
		style = style.Foreground(tcell.GetColor(fg))
	}
	if bg != "" {
		style = style.Background(tcell.GetColor(bg))
	}
	var mask tcell.AttrMask
	for _, r := range attrs {
		mask |= letterAttrs[r]
	}
	style = style.Attributes(mask)
	return StyleWrapper{Style: style, fg: fg, bg: bg, attrs: attrs}
}

// UnmarshalTOML implements the toml.Unmarshaler interface.
func (s *StyleWrapper) UnmarshalTOML(data any) error {
	m, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("expected table for style, got %T", data)
	}

	fg, _ := m["foreground"].(string)
	bg, _ := m["background"].(string)
	attrs, _ := m["attributes"].(string)
	if _, err := stringToAttrMask(attrs); err != nil {
		return err
	}
	*s = makeStyle(fg, bg, attrsToTviewString(attrs))
	return nil
}

// Foreground returns the foreground color.
func (s StyleWrapper) Foreground() tcell.Color {
	fg, _, _ := s.Style.Decompose()
	return fg
}

// Background returns the background color.
func (s StyleWrapper) Background() tcell.Color {
	_, bg, _ := s.Style.Decompose()
	return bg
}

// Tag returns the tview color tag for the style, e.g. "[green:-:b]".
func (s StyleWrapper) Tag() string {
	fg := s.fg
	if fg == "" {
		fg = "-"
	}
	if s.bg == "" && s.attrs == "" {
		return "[" + fg + "]"
	}
	bg := s.bg
	if bg == "" {
		bg = "-"
	}
	attrs := s.attrs
	if attrs == "" {
		attrs = "-"
	}
	return "[" + fg + ":" + bg + ":" + attrs + "]"
}

// Reset returns the tag that undoes Tag.
func (s StyleWrapper) Reset() string {
	switch {
	case s.bg != "":
		return "[-:-:-]"
	case s.attrs != "":
		return "[-::-]"
	default:
		return "[-]"
	}
}

var letterAttrs = map[rune]tcell.AttrMask{
	'b': tcell.AttrBold,
	'i': tcell.AttrItalic,
	'u': tcell.AttrUnderline,
	'd': tcell.AttrDim,
	'r': tcell.AttrReverse,
	'l': tcell.AttrBlink,
	's': tcell.AttrStrikeThrough,
}

var attrLetters = map[string]string{
	"bold":          "b",
	"italic":        "i",
	"underline":     "u",
	"dim":           "d",
	"reverse":       "r",
	"blink":         "l",
	"strikethrough": "s",
}

// stringToAttrMask parses a pipe-separated list of attribute names into
// a tcell.AttrMask. For example: "bold|underline".
func stringToAttrMask(s string) (tcell.AttrMask, error) {
	var mask tcell.AttrMask
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "none" || part == "" {
			continue
		}
		l, ok := attrLetters[part]
		if !ok {
			return 0, fmt.Errorf("unknown style attribute: %q", part)
		}
		mask |= letterAttrs[rune(l[0])]
	}
	return mask, nil
}

// attrsToTviewString converts "bold|underline" to "bu". Unknown names are
// ignored.
func attrsToTviewString(s string) string {
	var b strings.Builder
	for _, part := range strings.Split(s, "|") {
		b.WriteString(attrLetters[strings.TrimSpace(strings.ToLower(part))])
	}
	return b.String()
}

// Theme holds the complete theme configuration.
type Theme struct {
	Preset    string         `toml:"preset"`
	Border    BorderTheme    `toml:"border"`
	Title     TitleTheme     `toml:"title"`
	Picker    PickerTheme    `toml:"picker"`
	StatusBar StatusBarTheme `toml:"status_bar"`
	Markdown  MarkdownTheme  `toml:"markdown"`
}

// BorderTheme configures border styling.
type BorderTheme struct {
	Focused StyleWrapper `toml:"focused"`
	Normal  StyleWrapper `toml:"normal"`
}

// TitleTheme configures title bar styling.
type TitleTheme struct {
	Focused StyleWrapper `toml:"focused"`
	Normal  StyleWrapper `toml:"normal"`
}

// PickerTheme configures the emoji picker.
type PickerTheme struct {
	Category        StyleWrapper `toml:"category"`
	ActiveCategory  StyleWrapper `toml:"active_category"`
	Shortname       StyleWrapper `toml:"shortname"`
	Selected        StyleWrapper `toml:"selected"`
	InputBackground StyleWrapper `toml:"input_background"`
}

// StatusBarTheme configures the status bar styling.
type StatusBarTheme struct {
	Text       StyleWrapper `toml:"text"`
	Background StyleWrapper `toml:"background"`
}

// MarkdownTheme configures message rendering.
type MarkdownTheme struct {
	Link           StyleWrapper `toml:"link"`
	InlineCode     StyleWrapper `toml:"inline_code"`
	CodeFence      StyleWrapper `toml:"code_fence"`
	BlockquoteMark StyleWrapper `toml:"blockquote_mark"`
	BlockquoteText StyleWrapper `toml:"blockquote_text"`
	CustomEmoji    StyleWrapper `toml:"custom_emoji"`
}

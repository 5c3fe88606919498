package config

// palette is the small set of colors a preset is derived from.
type palette struct {
	text, muted, accent, highlight, link, code, statusBg string
}

var palettes = map[string]palette{
	"default": {text: "white", muted: "gray", accent: "blue", highlight: "yellow", link: "green", code: "gray", statusBg: "darkblue"},
	"dark":    {text: "#d0d0d0", muted: "#6c6c6c", accent: "#5f87d7", highlight: "#d7af5f", link: "#87af87", code: "#8a8a8a", statusBg: "#262626"},
	"light":   {text: "black", muted: "#808080", accent: "navy", highlight: "olive", link: "teal", code: "#5f5f5f", statusBg: "#d0d0d0"},
	"monokai": {text: "#f8f8f2", muted: "#75715e", accent: "#66d9ef", highlight: "#e6db74", link: "#a6e22e", code: "#fd971f", statusBg: "#272822"},
}

// BuiltinTheme returns a fully populated Theme for the given preset name.
// Unknown names fall back to "default".
func BuiltinTheme(name string) Theme {
	p, ok := palettes[name]
	if !ok {
		name = "default"
		p = palettes[name]
	}
	return Theme{
		Preset: name,
		Border: BorderTheme{
			Focused: makeStyle(p.accent, "", ""),
			Normal:  makeStyle(p.muted, "", ""),
		},
		Title: TitleTheme{
			Focused: makeStyle(p.text, "", "b"),
			Normal:  makeStyle(p.muted, "", ""),
		},
		Picker: PickerTheme{
			Category:        makeStyle(p.muted, "", ""),
			ActiveCategory:  makeStyle(p.highlight, "", "bu"),
			Shortname:       makeStyle(p.text, "", ""),
			Selected:        makeStyle(p.text, "", "r"),
			InputBackground: makeStyle("", p.statusBg, ""),
		},
		StatusBar: StatusBarTheme{
			Text:       makeStyle(p.text, "", ""),
			Background: makeStyle("", p.statusBg, ""),
		},
		Markdown: MarkdownTheme{
			Link:           makeStyle(p.link, "", "u"),
			InlineCode:     makeStyle(p.code, "", ""),
			CodeFence:      makeStyle(p.code, "", ""),
			BlockquoteMark: makeStyle(p.muted, "", ""),
			BlockquoteText: makeStyle("", "", "d"),
			CustomEmoji:    makeStyle(p.highlight, "", ""),
		},
	}
}

// Presets returns the names of the built-in themes.
func Presets() []string {
	return []string{"default", "dark", "light", "monokai"}
}

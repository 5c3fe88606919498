package config

// Keybinds holds all keybinding configuration. Values are plain strings
// matching the tcell.EventKey.Name() format (e.g. "Rune[j]", "Ctrl+T", "Enter").
type Keybinds struct {
	Picker PickerKeybinds `toml:"picker"`
}

// PickerKeybinds holds keybindings for the emoji picker.
type PickerKeybinds struct {
	Up           string `toml:"up"`
	Down         string `toml:"down"`
	Select       string `toml:"select"`
	Close        string `toml:"close"`
	NextCategory string `toml:"next_category"`
	PrevCategory string `toml:"prev_category"`
	NextSkinTone string `toml:"next_skintone"`
	Quit         string `toml:"quit"`
}

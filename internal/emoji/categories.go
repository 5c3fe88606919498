package emoji

import (
	"strconv"
	"strings"
)

// CategoryName identifies an emoji category.
type CategoryName string

const (
	CategorySmileys  CategoryName = "smileys"
	CategoryPeople   CategoryName = "people"
	CategoryActivity CategoryName = "activity"
	CategoryTravel   CategoryName = "travel"
	CategoryObjects  CategoryName = "objects"
	CategoryNature   CategoryName = "nature"
	CategoryFood     CategoryName = "food"
	CategorySymbols  CategoryName = "symbols"
	CategoryFlags    CategoryName = "flags"
	CategoryCustom   CategoryName = "custom"
)

// Category describes how a category is presented: a representative
// shortname for its tab and a human-readable label.
type Category struct {
	Name  CategoryName
	Emoji string // empty for custom
	Label string
}

// DefaultCategories lists the built-in categories in display order.
var DefaultCategories = []Category{
	{CategorySmileys, ":grinning:", "Smileys and emotions"},
	{CategoryPeople, ":thumbsup:", "People"},
	{CategoryActivity, ":soccer:", "Activities"},
	{CategoryTravel, ":motorcycle:", "Travel"},
	{CategoryObjects, ":bomb:", "Objects"},
	{CategoryNature, ":rainbow:", "Animals and nature"},
	{CategoryFood, ":hotdog:", "Food and drink"},
	{CategorySymbols, ":musical_note:", "Symbols"},
	{CategoryFlags, ":flag_ac:", "Flags"},
	{CategoryCustom, "", "Stickers"},
}

// IsBuiltinCategory reports whether name is one of DefaultCategories.
func IsBuiltinCategory(name string) bool {
	for _, c := range DefaultCategories {
		if string(c.Name) == name {
			return true
		}
	}
	return false
}

// Categories returns DefaultCategories with representative emoji and labels
// overridden from the given maps. Keys that do not name a built-in
// category are appended as extra categories in the order given by extra.
func Categories(emojis, labels map[string]string, extra ...string) []Category {
	out := make([]Category, 0, len(DefaultCategories)+len(extra))
	for _, c := range DefaultCategories {
		if v, ok := emojis[string(c.Name)]; ok {
			c.Emoji = v
		}
		if v, ok := labels[string(c.Name)]; ok && v != "" {
			c.Label = v
		}
		out = append(out, c)
	}
	for _, name := range extra {
		if IsBuiltinCategory(name) {
			continue
		}
		c := Category{Name: CategoryName(name), Emoji: emojis[name], Label: labels[name]}
		if c.Label == "" {
			c.Label = name
		}
		out = append(out, c)
	}
	return out
}

// SkinTone returns the skin tone suffix of a shortname ("tone1" ... "tone5")
// or "" if it has none. ":thumbsup_tone3:" → "tone3".
func SkinTone(shortname string) string {
	name := strings.TrimSuffix(shortname, ":")
	i := strings.LastIndex(name, "_tone")
	if i < 0 {
		return ""
	}
	n, err := strconv.Atoi(name[i+len("_tone"):])
	if err != nil || n < 1 || n > 5 {
		return ""
	}
	return name[i+1:]
}

// BaseShortname strips a skin tone suffix. ":thumbsup_tone3:" → ":thumbsup:".
func BaseShortname(shortname string) string {
	tone := SkinTone(shortname)
	if tone == "" {
		return shortname
	}
	name := strings.TrimSuffix(shortname, ":")
	base := strings.TrimSuffix(name, "_"+tone)
	if strings.HasSuffix(shortname, ":") {
		return base + ":"
	}
	return base
}

// SkinTones lists the selectable tones; "" is the default yellow.
var SkinTones = []string{"", "tone1", "tone2", "tone3", "tone4", "tone5"}

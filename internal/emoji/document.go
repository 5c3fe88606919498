package emoji

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidDocument is returned when a document does not have the
// category → shortname → definition shape.
var ErrInvalidDocument = errors.New("invalid emoji document")

// Definition is a single emoji entry. Unicode emoji carry a codepoint
// sequence; custom emoji (stickers) carry a URL instead.
type Definition struct {
	Shortname string `json:"sn"`
	Codepoint string `json:"cp,omitempty"`
	URL       string `json:"url,omitempty"`
	Category  string `json:"c,omitempty"`
}

// definitionJSON mirrors Definition but leaves url undecoded so that a
// non-string reference does not fail the whole document.
type definitionJSON struct {
	Shortname string          `json:"sn"`
	Codepoint string          `json:"cp"`
	URL       json.RawMessage `json:"url"`
	Category  string          `json:"c"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Definition) UnmarshalJSON(data []byte) error {
	var raw definitionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Shortname = raw.Shortname
	d.Codepoint = raw.Codepoint
	d.Category = raw.Category
	d.URL = ""
	if len(raw.URL) > 0 {
		var s string
		if json.Unmarshal(raw.URL, &s) == nil {
			d.URL = s
		}
	}
	return nil
}

// IsCustom reports whether the definition refers to an image rather than a
// unicode glyph.
func (d Definition) IsCustom() bool {
	return d.Codepoint == "" && d.URL != ""
}

// Glyph decodes the codepoint sequence (e.g. "1f468-200d-1f469") into its
// unicode string. It returns "" for custom emoji or a malformed sequence.
func (d Definition) Glyph() string {
	if d.Codepoint == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(d.Codepoint, "-") {
		n, err := strconv.ParseUint(part, 16, 32)
		if err != nil {
			return ""
		}
		b.WriteRune(rune(n))
	}
	return b.String()
}

// ImageURL returns the image reference for the definition: the URL for
// custom emoji, or a twemoji-style PNG under imagePath for unicode emoji.
func (d Definition) ImageURL(imagePath string) string {
	if d.URL != "" {
		return d.URL
	}
	if d.Codepoint == "" {
		return ""
	}
	if imagePath != "" && !strings.HasSuffix(imagePath, "/") {
		imagePath += "/"
	}
	return imagePath + "72x72/" + d.Codepoint + ".png"
}

// Document is the raw emoji definition document: category name → shortname
// → definition.
type Document map[string]map[string]Definition

// DecodeDocument parses a JSON document and validates its shape. Entries
// without an "sn" field take their shortname from the map key, and entries
// without a "c" field take the enclosing category.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrInvalidDocument)
	}
	if err := doc.normalize(); err != nil {
		return nil, err
	}
	return doc, nil
}

// normalize fills in missing shortnames and categories. Null categories
// are dropped.
func (doc Document) normalize() error {
	for cat, entries := range doc {
		if entries == nil {
			delete(doc, cat)
			continue
		}
		for key, def := range entries {
			if key == "" {
				return fmt.Errorf("%w: empty shortname in category %q", ErrInvalidDocument, cat)
			}
			changed := false
			if def.Shortname == "" {
				def.Shortname = key
				changed = true
			}
			if def.Category == "" {
				def.Category = cat
				changed = true
			}
			if changed {
				entries[key] = def
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the document.
func (doc Document) Clone() Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for cat, entries := range doc {
		m := make(map[string]Definition, len(entries))
		for k, v := range entries {
			m[k] = v
		}
		out[cat] = m
	}
	return out
}

// Len returns the total number of entries across all categories.
func (doc Document) Len() int {
	n := 0
	for _, entries := range doc {
		n += len(entries)
	}
	return n
}

// categoryOrder returns the document's category names: the built-in
// categories in their fixed order first, then any others sorted by name.
func (doc Document) categoryOrder() []string {
	names := make([]string, 0, len(doc))
	for _, c := range DefaultCategories {
		if _, ok := doc[string(c.Name)]; ok {
			names = append(names, string(c.Name))
		}
	}
	var extra []string
	for cat := range doc {
		if !IsBuiltinCategory(cat) {
			extra = append(extra, cat)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}

// sortedKeys returns the shortname keys of a category in ascending order.
func sortedKeys(entries map[string]Definition) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

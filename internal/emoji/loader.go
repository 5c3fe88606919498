package emoji

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	kemoji "github.com/kyokomi/emoji/v2"
)

//go:embed emoji.json
var bundledDocument []byte

// Loader produces a raw emoji document.
type Loader interface {
	Load(ctx context.Context) (Document, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (Document, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context) (Document, error) {
	return f(ctx)
}

// EmbeddedLoader loads the document bundled with the binary.
func EmbeddedLoader() Loader {
	return LoaderFunc(func(context.Context) (Document, error) {
		doc, err := DecodeDocument(bundledDocument)
		if err != nil {
			return nil, fmt.Errorf("bundled document: %w", err)
		}
		return doc, nil
	})
}

// FileLoader loads a JSON document from path.
func FileLoader(path string) Loader {
	return LoaderFunc(func(context.Context) (Document, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading emoji document: %w", err)
		}
		doc, err := DecodeDocument(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return doc, nil
	})
}

// codeMapCategories assigns categories to well-known code map names that
// cannot be classified by prefix.
var codeMapCategories = map[string]CategoryName{
	"grinning": CategorySmileys, "smile": CategorySmileys, "joy": CategorySmileys,
	"heart_eyes": CategorySmileys, "wink": CategorySmileys, "thinking_face": CategorySmileys,
	"thumbsup": CategoryPeople, "thumbsdown": CategoryPeople, "+1": CategoryPeople,
	"-1": CategoryPeople, "wave": CategoryPeople, "clap": CategoryPeople, "pray": CategoryPeople,
	"soccer": CategoryActivity, "basketball": CategoryActivity, "tada": CategoryActivity,
	"motorcycle": CategoryTravel, "rocket": CategoryTravel, "airplane": CategoryTravel,
	"bomb": CategoryObjects, "bulb": CategoryObjects, "computer": CategoryObjects,
	"rainbow": CategoryNature, "dog": CategoryNature, "cat": CategoryNature, "fire": CategoryNature,
	"hotdog": CategoryFood, "pizza": CategoryFood, "coffee": CategoryFood,
}

// ClassifyCodeMapName returns the category for a code map name (without
// colons). Flags are detected by prefix; unknown names are symbols.
func ClassifyCodeMapName(name string) CategoryName {
	if strings.HasPrefix(name, "flag_") || strings.HasPrefix(name, "flag-") {
		return CategoryFlags
	}
	if c, ok := codeMapCategories[name]; ok {
		return c
	}
	if base := strings.Trim(BaseShortname(":"+name+":"), ":"); base != name {
		if c, ok := codeMapCategories[base]; ok {
			return c
		}
	}
	return CategorySymbols
}

// CodeMapLoader builds a document from the unicode code map shipped with
// github.com/kyokomi/emoji. Names that are not valid shortnames (uppercase
// aliases, spaces) are skipped.
func CodeMapLoader() Loader {
	return LoaderFunc(func(context.Context) (Document, error) {
		doc := make(Document)
		for key, glyph := range kemoji.CodeMap() {
			name := strings.TrimSuffix(strings.TrimPrefix(key, ":"), ":")
			if !isShortnameBody(name) {
				continue
			}
			cat := string(ClassifyCodeMapName(name))
			if doc[cat] == nil {
				doc[cat] = make(map[string]Definition)
			}
			sn := ":" + name + ":"
			doc[cat][sn] = Definition{
				Shortname: sn,
				Codepoint: Codepoint(glyph),
				Category:  cat,
			}
		}
		return doc, nil
	})
}

// isShortnameBody accepts lowercase letters, digits, '_', '-' and '+'.
func isShortnameBody(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-', r == '+':
		default:
			return false
		}
	}
	return true
}

// Codepoint encodes a glyph as a dash separated hex sequence. Variation
// selector 16 is dropped unless the sequence contains a zero width joiner.
func Codepoint(glyph string) string {
	const (
		vs16 = '\uFE0F'
		zwj  = '\u200D'
	)
	glyph = strings.TrimSpace(glyph)
	hasZWJ := strings.ContainsRune(glyph, zwj)

	parts := make([]string, 0, len(glyph))
	for _, r := range glyph {
		if !hasZWJ && r == vs16 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%x", r))
	}
	return strings.Join(parts, "-")
}

// MergeLoaders runs loaders in order and merges their documents. A later
// document overrides an earlier one per shortname; an entry that moves to
// another category is removed from the old one.
func MergeLoaders(loaders ...Loader) Loader {
	return LoaderFunc(func(ctx context.Context) (Document, error) {
		out := make(Document)
		where := make(map[string]string) // shortname key → category
		for _, l := range loaders {
			doc, err := l.Load(ctx)
			if err != nil {
				return nil, err
			}
			for _, cat := range doc.categoryOrder() {
				for _, key := range sortedKeys(doc[cat]) {
					if prev, ok := where[key]; ok && prev != cat {
						delete(out[prev], key)
					}
					if out[cat] == nil {
						out[cat] = make(map[string]Definition)
					}
					out[cat][key] = doc[cat][key]
					where[key] = cat
				}
			}
		}
		return out, nil
	})
}

package emoji

import "strings"

// DefaultAssetsPath is the asset prefix used by custom emoji references in
// the bundled document.
const DefaultAssetsPath = "/dist/"

// NormalizeAssetsPath guarantees a trailing separator. An empty path means
// DefaultAssetsPath.
func NormalizeAssetsPath(path string) string {
	if path == "" {
		return DefaultAssetsPath
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

// FixCustomPath rewrites custom emoji URLs that start with /dist/ to live
// under assetsPath instead. It is a no-op when assetsPath is the default or
// the document has no custom category. Entries without a URL are skipped.
// It returns the number of rewritten entries.
func FixCustomPath(doc Document, assetsPath string) int {
	path := NormalizeAssetsPath(assetsPath)
	if path == DefaultAssetsPath {
		return 0
	}
	custom, ok := doc[string(CategoryCustom)]
	if !ok || custom == nil {
		return 0
	}

	n := 0
	for key, def := range custom {
		if def.URL == "" || !strings.HasPrefix(def.URL, DefaultAssetsPath) {
			continue
		}
		def.URL = path + strings.TrimPrefix(def.URL, DefaultAssetsPath)
		custom[key] = def
		n++
	}
	return n
}

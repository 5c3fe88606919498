package app

import (
	"fmt"
	"log/slog"

	"github.com/m96-chan/emojikit/internal/config"
	"github.com/m96-chan/emojikit/internal/emoji"
	"github.com/m96-chan/emojikit/internal/hooks"
)

// Loader returns the emoji document loader selected by cfg.Emoji.Source.
func Loader(cfg *config.Config) emoji.Loader {
	switch cfg.Emoji.Source {
	case config.SourceBundled, "":
		return emoji.EmbeddedLoader()
	case config.SourceUnicode:
		// The bundled document keeps its categories and stickers on top of
		// the full unicode set.
		return emoji.MergeLoaders(emoji.CodeMapLoader(), emoji.EmbeddedLoader())
	default:
		return emoji.FileLoader(cfg.Emoji.Source)
	}
}

// NewCatalog builds an uninitialized catalog from cfg, compiling the
// configured hook scripts.
func NewCatalog(cfg *config.Config, log *slog.Logger) (*emoji.Catalog, error) {
	hs, err := hooks.LoadFiles(cfg.Emoji.Hooks, cfg.Emoji.HookTimeout)
	if err != nil {
		return nil, fmt.Errorf("loading emoji hooks: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	log.Debug("emoji catalog configured",
		"source", cfg.Emoji.Source,
		"hooks", len(hs),
		"assets_path", cfg.Emoji.AssetsPath,
		"match_policy", cfg.MatchPolicy())

	return emoji.New(emoji.Options{
		Loader:      Loader(cfg),
		Hooks:       hs,
		AssetsPath:  cfg.Emoji.AssetsPath,
		MatchPolicy: cfg.MatchPolicy(),
		Logger:      log,
	}), nil
}

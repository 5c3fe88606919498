// Package ui holds helpers shared by the terminal components.
package ui

import (
	"github.com/m96-chan/emojikit/internal/config"
	"github.com/m96-chan/emojikit/internal/emoji"
	"github.com/m96-chan/emojikit/internal/markdown"
)

// MarkdownColors converts the markdown theme into renderer tags.
func MarkdownColors(t config.MarkdownTheme) markdown.MarkdownColors {
	return markdown.MarkdownColors{
		Link:           t.Link.Tag(),
		InlineCode:     t.InlineCode.Tag(),
		CodeFence:      t.CodeFence.Tag(),
		BlockquoteMark: t.BlockquoteMark.Tag(),
		BlockquoteText: t.BlockquoteText.Tag(),
		CustomEmoji:    t.CustomEmoji.Tag(),
	}
}

// RenderOptions returns renderer options for cfg. A nil matcher disables
// emoji substitution.
func RenderOptions(cfg *config.Config, matcher *emoji.Matcher) markdown.Options {
	return markdown.Options{
		Enabled:     cfg.Markdown.Enabled,
		SyntaxTheme: cfg.Markdown.SyntaxTheme,
		Colors:      MarkdownColors(cfg.Theme.Markdown),
		Emoji:       matcher,
	}
}

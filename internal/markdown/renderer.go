// Package markdown renders chat message text into tview-tagged output.
package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rivo/tview"

	"github.com/m96-chan/emojikit/internal/emoji"
)

// placeholder markers for tokens that should not be processed by inline formatting.
const placeholderPrefix = "\x00T"
const placeholderSuffix = "\x00"

var (
	// Bare links: http(s)://... up to whitespace.
	urlRe = regexp.MustCompile(`https?://[^\s<>]+[^\s<>.,;:!?)'"]`)

	// Inline code: `text` (single backtick, not inside code blocks).
	inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")

	// Bold: *text*.
	boldRe = regexp.MustCompile(`\*([^\*\n]+)\*`)

	// Italic: _text_.
	italicRe = regexp.MustCompile(`_([^_\n]+)_`)

	// Strikethrough: ~text~.
	strikeRe = regexp.MustCompile(`~([^~\n]+)~`)

	// Code block: ```lang\ncode``` or ```code```.
	codeBlockRe = regexp.MustCompile("(?s)```(\\w*)\\n?(.*?)```")
)

// MarkdownColors holds pre-computed tview tag strings for markdown rendering,
// avoiding a direct dependency on the config package.
type MarkdownColors struct {
	Link           string // e.g. "[blue::u]"
	InlineCode     string // e.g. "[gray]"
	CodeFence      string // e.g. "[gray]"
	BlockquoteMark string // e.g. "[gray]"
	BlockquoteText string // e.g. "[::d]"
	CustomEmoji    string // e.g. "[fuchsia]"
}

// DefaultMarkdownColors returns the colors used when no theme is configured.
func DefaultMarkdownColors() MarkdownColors {
	return MarkdownColors{
		Link:           "[blue::u]",
		InlineCode:     "[gray]",
		CodeFence:      "[gray]",
		BlockquoteMark: "[gray]",
		BlockquoteText: "[::d]",
		CustomEmoji:    "[fuchsia]",
	}
}

// Options controls rendering.
type Options struct {
	Enabled     bool   // false renders plain escaped text with emoji only
	SyntaxTheme string // chroma style name
	Colors      MarkdownColors
	Emoji       *emoji.Matcher // nil disables emoji substitution
}

// Render converts message text to tview-formatted output. Shortnames known
// to the matcher are replaced with their glyph; custom emoji fall back to a
// styled [:name:] marker. Text inside code is left as-is.
func Render(text string, opts Options) string {
	if !opts.Enabled {
		return replaceEmoji(tview.Escape(text), opts.Emoji, opts.Colors, nil)
	}

	segments := splitCodeBlocks(text)

	var b strings.Builder
	for _, seg := range segments {
		if seg.isCode {
			b.WriteString(renderCodeBlock(seg.lang, seg.code, opts.SyntaxTheme, opts.Colors))
		} else {
			b.WriteString(renderInline(seg.text, opts))
		}
	}

	return b.String()
}

// segment represents either a code block or inline text.
type segment struct {
	isCode bool
	lang   string // language hint for code blocks
	code   string // code block content
	text   string // inline text content
}

// splitCodeBlocks splits text into alternating inline/code-block segments.
func splitCodeBlocks(text string) []segment {
	var segments []segment

	matches := codeBlockRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []segment{{text: text}}
	}

	prev := 0
	for _, m := range matches {
		if m[0] > prev {
			segments = append(segments, segment{text: text[prev:m[0]]})
		}

		segments = append(segments, segment{
			isCode: true,
			lang:   text[m[2]:m[3]],
			code:   text[m[4]:m[5]],
		})
		prev = m[1]
	}

	if prev < len(text) {
		segments = append(segments, segment{text: text[prev:]})
	}

	return segments
}

// resetFor returns the tag that undoes tag.
func resetFor(tag string) string {
	if strings.Count(tag, ":") >= 2 {
		return "[-::-]"
	}
	return "[-]"
}

// renderCodeBlock renders a fenced code block with syntax highlighting.
func renderCodeBlock(lang, code string, syntaxTheme string, colors MarkdownColors) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(syntaxTheme)
	if style == nil {
		style = styles.Fallback
	}

	fenceTag := colors.CodeFence
	fenceReset := resetFor(fenceTag)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fenceTag + "```" + fenceReset + "\n" + tview.Escape(code) + "\n" + fenceTag + "```" + fenceReset
	}

	var buf strings.Builder
	buf.WriteString(fenceTag + "```" + fenceReset)
	if lang != "" {
		buf.WriteString(fenceTag + tview.Escape(lang) + fenceReset)
	}
	buf.WriteString("\n")

	for _, token := range iterator.Tokens() {
		text := tview.Escape(token.Value)
		entry := style.Get(token.Type)

		if !entry.Colour.IsSet() {
			buf.WriteString(text)
			continue
		}
		attrs := ""
		if entry.Bold == chroma.Yes {
			attrs += "b"
		}
		if entry.Italic == chroma.Yes {
			attrs += "i"
		}
		if attrs != "" {
			fmt.Fprintf(&buf, "[%s::%s]%s[-::-]", entry.Colour.String(), attrs, text)
		} else {
			fmt.Fprintf(&buf, "[%s]%s[-]", entry.Colour.String(), text)
		}
	}

	result := strings.TrimRight(buf.String(), "\n")
	return result + "\n" + fenceTag + "```" + fenceReset
}

// placeholders stashes rendered fragments so later passes do not touch them.
type placeholders []string

func (p *placeholders) add(rendered string) string {
	idx := len(*p)
	*p = append(*p, rendered)
	return fmt.Sprintf("%s%d%s", placeholderPrefix, idx, placeholderSuffix)
}

func (p placeholders) restore(text string) string {
	for i, r := range p {
		text = strings.Replace(text, fmt.Sprintf("%s%d%s", placeholderPrefix, i, placeholderSuffix), r, 1)
	}
	return text
}

// renderInline processes inline formatting.
func renderInline(text string, opts Options) string {
	colors := opts.Colors
	var ph placeholders

	// Links first: URLs routinely contain '_' and '~'.
	linkReset := resetFor(colors.Link)
	text = urlRe.ReplaceAllStringFunc(text, func(url string) string {
		return ph.add(colors.Link + tview.Escape(url) + linkReset)
	})

	text = tview.Escape(text)

	codeReset := resetFor(colors.InlineCode)
	text = inlineCodeRe.ReplaceAllStringFunc(text, func(match string) string {
		return ph.add(colors.InlineCode + match + codeReset)
	})

	// Emoji before formatting so that '_' inside shortnames is not read as italics.
	text = replaceEmoji(text, opts.Emoji, colors, &ph)

	text = renderBlockquotes(text, colors)

	text = boldRe.ReplaceAllString(text, "[::b]$1[::-]")
	text = italicRe.ReplaceAllString(text, "[::i]$1[::-]")
	text = strikeRe.ReplaceAllString(text, "[::s]$1[::-]")

	return ph.restore(text)
}

// replaceEmoji substitutes known shortnames in already escaped text. When ph
// is non-nil the replacements are stashed as placeholders.
func replaceEmoji(text string, m *emoji.Matcher, colors MarkdownColors, ph *placeholders) string {
	if m == nil {
		return text
	}
	return m.ReplaceAll(text, func(d emoji.Definition) string {
		out := EmojiText(d, colors)
		if ph != nil {
			return ph.add(out)
		}
		return out
	})
}

// EmojiText returns the display form of a definition: its glyph, or a
// styled [:name:] marker for custom emoji and undecodable codepoints.
func EmojiText(d emoji.Definition, colors MarkdownColors) string {
	if g := d.Glyph(); g != "" {
		return g
	}
	return colors.CustomEmoji + tview.Escape("["+d.Shortname+"]") + resetFor(colors.CustomEmoji)
}

// renderBlockquotes converts lines starting with "> " to styled blockquotes.
func renderBlockquotes(text string, colors MarkdownColors) string {
	markTag := colors.BlockquoteMark
	markReset := resetFor(markTag)
	textTag := colors.BlockquoteText
	textReset := "[::-]"

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		stripped := strings.TrimLeft(line, " \t")
		if content, ok := strings.CutPrefix(stripped, "> "); ok {
			lines[i] = markTag + "▎" + markReset + " " + textTag + content + textReset
		} else if stripped == ">" {
			lines[i] = markTag + "▎" + markReset
		}
	}
	return strings.Join(lines, "\n")
}

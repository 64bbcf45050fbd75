package mailer

import (
	"bytes"
	"errors"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dmitrymomot/mailgate/pkg/sanitizer"
)

// BodyBuilder turns request content into the HTML body of a message.
type BodyBuilder struct {
	md       goldmark.Markdown
	sanitize bool
}

// NewBodyBuilder returns a builder. With sanitize set, every produced body
// is passed through sanitizer.EmailHTML.
func NewBodyBuilder(sanitize bool) *BodyBuilder {
	return &BodyBuilder{
		md: goldmark.New(goldmark.WithExtensions(
			extension.GFM,
			NewButtonExtension(),
		)),
		sanitize: sanitize,
	}
}

// HTML picks the effective body: HTML as given, else rendered Markdown,
// else Text wrapped in a paragraph with line breaks.
func (b *BodyBuilder) HTML(c Content) (string, error) {
	var out string
	switch {
	case c.HTML != "":
		out = c.HTML
	case c.Markdown != "":
		var buf bytes.Buffer
		if err := b.md.Convert([]byte(c.Markdown), &buf); err != nil {
			return "", errors.Join(ErrRender, err)
		}
		out = buf.String()
	case c.Text != "":
		out = TextToHTML(c.Text)
	default:
		return "", ErrNoContent
	}

	if b.sanitize {
		out = sanitizer.EmailHTML(out)
	}
	return out, nil
}

// TextToHTML escapes text and converts newlines to <br>.
func TextToHTML(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return "<p>" + strings.ReplaceAll(html.EscapeString(text), "\n", "<br>") + "</p>"
}

package mailer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/mailgate/pkg/mailer"
)

func TestBodyBuilder_HTML(t *testing.T) {
	t.Parallel()

	b := mailer.NewBodyBuilder(false)

	tests := []struct {
		name    string
		content mailer.Content
		want    string
	}{
		{
			name:    "html wins",
			content: mailer.Content{HTML: "<b>x</b>", Markdown: "*y*", Text: "z"},
			want:    "<b>x</b>",
		},
		{
			name:    "markdown over text",
			content: mailer.Content{Markdown: "**bold**", Text: "z"},
			want:    "<p><strong>bold</strong></p>\n",
		},
		{
			name:    "text gets paragraph and breaks",
			content: mailer.Content{Text: "line1\nline2"},
			want:    "<p>line1<br>line2</p>",
		},
		{
			name:    "text is escaped",
			content: mailer.Content{Text: "<script>&"},
			want:    "<p>&lt;script&gt;&amp;</p>",
		},
		{
			name:    "crlf is one break",
			content: mailer.Content{Text: "a\r\nb"},
			want:    "<p>a<br>b</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := b.HTML(tt.content)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("no content", func(t *testing.T) {
		t.Parallel()

		_, err := b.HTML(mailer.Content{Subject: "S"})
		require.ErrorIs(t, err, mailer.ErrNoContent)
	})
}

func TestBodyBuilder_Sanitize(t *testing.T) {
	t.Parallel()

	b := mailer.NewBodyBuilder(true)
	got, err := b.HTML(mailer.Content{HTML: `<p onclick="x()">Hi</p><script>alert(1)</script>`})
	require.NoError(t, err)
	require.Equal(t, "<p>Hi</p>", got)
}

func TestButtonExtension(t *testing.T) {
	t.Parallel()

	md := goldmark.New(goldmark.WithExtensions(mailer.NewButtonExtension()))
	render := func(t *testing.T, src string) string {
		t.Helper()
		var buf bytes.Buffer
		require.NoError(t, md.Convert([]byte(src), &buf))
		return buf.String()
	}

	t.Run("renders a styled link", func(t *testing.T) {
		t.Parallel()

		out := render(t, "Confirm:\n\n[!button|Confirm email](https://example.com/c?a=1&b=2)")
		require.Contains(t, out, `<a href="https://example.com/c?a=1&amp;b=2" class="button"`)
		require.Contains(t, out, `>Confirm email</a>`)
	})

	t.Run("escapes the label", func(t *testing.T) {
		t.Parallel()

		out := render(t, `[!button|<b>x</b>](https://example.com)`)
		require.Contains(t, out, "&lt;b&gt;x&lt;/b&gt;")
		require.NotContains(t, out, "<b>")
	})

	t.Run("drops dangerous urls", func(t *testing.T) {
		t.Parallel()

		out := render(t, `[!button|Go](javascript:alert(1))`)
		require.NotContains(t, out, "javascript:")
		require.Contains(t, out, `href=""`)
	})

	t.Run("ordinary links are untouched", func(t *testing.T) {
		t.Parallel()

		out := render(t, `[docs](https://example.com)`)
		require.Contains(t, out, `<a href="https://example.com">docs</a>`)
	})
}

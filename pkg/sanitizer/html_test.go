package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailgate/pkg/sanitizer"
)

func TestEmailHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		in          string
		contains    []string
		notContains []string
	}{
		{
			name:        "removes script",
			in:          `<p>Hi</p><script>alert(1)</script>`,
			contains:    []string{"<p>Hi</p>"},
			notContains: []string{"<script", "alert"},
		},
		{
			name:        "removes event handlers",
			in:          `<p onclick="steal()">Hi</p>`,
			contains:    []string{"Hi"},
			notContains: []string{"onclick"},
		},
		{
			name:        "removes javascript urls",
			in:          `<a href="javascript:alert(1)">x</a>`,
			notContains: []string{"javascript:"},
		},
		{
			name:     "keeps cid images",
			in:       `<img src="cid:logo" alt="logo">`,
			contains: []string{`src="cid:logo"`},
		},
		{
			name:     "keeps tables",
			in:       `<table><tr><td>cell</td></tr></table>`,
			contains: []string{"<table>", "<td>cell</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := sanitizer.EmailHTML(tt.in)
			for _, s := range tt.contains {
				require.Contains(t, out, s)
			}
			for _, s := range tt.notContains {
				require.NotContains(t, out, s)
			}
		})
	}
}

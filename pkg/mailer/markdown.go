package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindButton is the AST kind of a call-to-action link written as
// [!button|Label](https://example.com).
var KindButton = ast.NewNodeKind("Button")

var buttonMarker = []byte("[!button|")

const buttonStyle = "display:inline-block;padding:12px 24px;border-radius:4px;" +
	"background:#2563eb;color:#ffffff;text-decoration:none;font-weight:600"

// Button is a call-to-action link rendered as a styled anchor.
type Button struct {
	ast.BaseInline
	Label []byte
	URL   []byte
}

func (n *Button) Kind() ast.NodeKind { return KindButton }

func (n *Button) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label": string(n.Label),
		"URL":   string(n.URL),
	}, nil)
}

type buttonParser struct{}

func (buttonParser) Trigger() []byte { return []byte{'['} }

func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, buttonMarker) {
		return nil
	}

	rest := line[len(buttonMarker):]
	labelEnd := bytes.IndexByte(rest, ']')
	if labelEnd < 0 || labelEnd+1 >= len(rest) || rest[labelEnd+1] != '(' {
		return nil
	}
	urlPart := rest[labelEnd+2:]
	urlEnd := bytes.IndexByte(urlPart, ')')
	if urlEnd < 0 {
		return nil
	}

	block.Advance(len(buttonMarker) + labelEnd + 2 + urlEnd + 1)
	return &Button{
		Label: rest[:labelEnd],
		URL:   bytes.TrimSpace(urlPart[:urlEnd]),
	}
}

type buttonRenderer struct{}

func (buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindButton, renderButton)
}

func renderButton(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Button)

	href := n.URL
	if html.IsDangerousURL(href) {
		href = nil
	}

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(href, true)))
	_, _ = w.WriteString(`" class="button" style="` + buttonStyle + `">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkSkipChildren, nil
}

type buttonExtension struct{}

func (buttonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(buttonParser{}, 50)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(buttonRenderer{}, 50)))
}

// NewButtonExtension registers the [!button|Label](url) syntax with goldmark.
func NewButtonExtension() goldmark.Extender {
	return buttonExtension{}
}

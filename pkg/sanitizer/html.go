package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	emailPolicy *bluemonday.Policy
	initOnce    sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// Email clients render tables and inline styles, so start from the
		// UGC policy and add what a typical transactional template needs.
		emailPolicy = bluemonday.UGCPolicy()
		emailPolicy.AllowURLSchemes("mailto", "http", "https", "cid")
		emailPolicy.AllowAttrs("class").Globally()
		emailPolicy.AllowAttrs("align", "width", "height", "cellpadding", "cellspacing", "border").
			OnElements("table", "td", "th", "img")
		emailPolicy.AllowStyles("color", "background-color", "text-align", "font-weight", "padding", "margin").
			Globally()
	})
}

// EmailHTML strips scripts, event handlers and unsafe URLs from an HTML
// email body while keeping formatting, tables and cid: image references.
func EmailHTML(s string) string {
	initPolicies()
	return emailPolicy.Sanitize(s)
}

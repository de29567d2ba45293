package utils

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var htmlPolicy = bluemonday.UGCPolicy()

// RenderMarkdown converts generated markdown into HTML that is safe to embed in
// a page.
func RenderMarkdown(text string) string {
	html := blackfriday.Run([]byte(text))
	return string(htmlPolicy.SanitizeBytes(html))
}

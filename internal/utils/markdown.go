package utils

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	// GFM covers tables, strikethrough, task lists and bare URL autolinks.
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	// Posts are written by the site author, raw HTML is kept.
	postParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	// Allow images
	policy.AllowImages()
	// Force links to open in new tab
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	// Reader-submitted links
	policy.RequireNoFollowOnLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown converts reader-submitted Markdown into sanitized HTML.
// Results are cached by content, so the same message is rendered once per process.
func RenderMarkdown(source string) template.HTML {
	cache := GetRenderCache()
	if out, ok := cache.Get(source); ok {
		return out
	}
	out := renderMarkdown(source)
	cache.Set(source, out)
	return out
}

func renderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		// Fallback: escaped source
		return template.HTML(template.HTMLEscapeString(source))
	}

	// Sanitize HTML
	sanitized := policy.SanitizeBytes(buf.Bytes())

	// Enhance Image Attributes
	return EnhanceHTMLContent(string(sanitized))
}

// RenderPostMarkdown converts a post body. No sanitizing: the source is trusted.
func RenderPostMarkdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := postParser.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

package ui

import (
	"labelops/internal/analytics"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderReportHTML renders the markdown operations report as a standalone page
func RenderReportHTML(d *analytics.Dashboard) []byte {
	// parsers keep state between calls
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Labeling Operations Report",
		Flags: html.CommonFlags | html.CompletePage | html.HrefTargetBlank,
	})
	return markdown.ToHTML([]byte(analytics.RenderMarkdown(d)), p, renderer)
}

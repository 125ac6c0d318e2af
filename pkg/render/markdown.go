// Package render turns generated Markdown into HTML that is safe to embed in the page.
package render

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(goldmark.WithExtensions(extension.GFM))

	// UGC policy: the model output is untrusted input.
	policy = bluemonday.UGCPolicy()
)

// Markdown renders text as sanitized HTML. If conversion fails, the escaped
// plain text is returned inside a <pre> block.
func Markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(text) + "</pre>")
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

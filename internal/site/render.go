package site

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// pageData holds the data passed to the HTML template.
type pageData struct {
	Title   string
	Content template.HTML
}

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)

	page = template.Must(template.New("page").Parse(pageTemplate))
)

// HTML renders overview Markdown as a standalone page.
func HTML(title, md string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	var out bytes.Buffer
	err := page.Execute(&out, pageData{
		Title:   title,
		Content: template.HTML(postProcessMermaid(body.String())),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return out.Bytes(), nil
}

// postProcessMermaid turns mermaid code blocks into the divs mermaid.js
// renders.
func postProcessMermaid(html string) string {
	const openTag = `<pre><code class="language-mermaid">`
	const closeTag = `</code></pre>`

	var b strings.Builder
	for {
		idx := strings.Index(html, openTag)
		if idx == -1 {
			break
		}
		end := strings.Index(html[idx:], closeTag)
		if end == -1 {
			break
		}
		end += idx
		b.WriteString(html[:idx])
		b.WriteString(`<div class="mermaid">`)
		b.WriteString(html[idx+len(openTag) : end])
		b.WriteString(`</div>`)
		html = html[end+len(closeTag):]
	}
	b.WriteString(html)
	return b.String()
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | archmap</title>
  <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
  <style>
    body { font-family: system-ui, sans-serif; background: #0B0F1A; color: #E6E9F2; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
    table { border-collapse: collapse; margin: 1rem 0; }
    th, td { border: 1px solid #2A3148; padding: 0.35rem 0.75rem; }
    code { font-family: ui-monospace, monospace; }
    pre { padding: 1rem; border-radius: 6px; overflow-x: auto; }
    .mermaid { background: #111726; border-radius: 6px; padding: 1rem; }
  </style>
</head>
<body>
  <article>
    {{.Content}}
  </article>
  <script>mermaid.initialize({ startOnLoad: true, theme: "dark" });</script>
</body>
</html>`

// Package page renders one Markdown page source to a standalone HTML
// document: YAML front matter is split off, include directives are expanded,
// the body is converted with goldmark, and the result is wrapped in a minimal
// HTML shell referencing the site stylesheet.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	ghtml "github.com/yuin/goldmark/renderer/html"
	yaml "gopkg.in/yaml.v3"

	"github.com/snipdoc/snipdoc/internal/render"
	"github.com/snipdoc/snipdoc/internal/shortcode"
)

// FrontMatter carries the page metadata the build acts on. Unknown keys are
// tolerated so pages can hold metadata for other tooling.
type FrontMatter struct {
	Title string `yaml:"title"`
	Lang  string `yaml:"lang"`
}

const frontMatterFence = "---"

// Split separates YAML front matter from the Markdown body. Content without a
// leading fence is all body.
func Split(src []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter
	s := string(src)
	if !strings.HasPrefix(s, frontMatterFence+"\n") {
		return fm, src, nil
	}
	rest := s[len(frontMatterFence)+1:]
	idx := strings.Index(rest, "\n"+frontMatterFence)
	if idx < 0 {
		return fm, nil, fmt.Errorf("front matter fence never closed")
	}
	head := rest[:idx]
	body := rest[idx+len(frontMatterFence)+1:]
	body = strings.TrimPrefix(body, "\n")
	if err := yaml.Unmarshal([]byte(head), &fm); err != nil {
		return fm, nil, fmt.Errorf("parse front matter: %w", err)
	}
	return fm, []byte(body), nil
}

// The include blocks are raw HTML, so the renderer must pass HTML through.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

var shell = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.CSSHref}}">
</head>
<body>
<main>
{{.Body}}
</main>
</body>
</html>
`))

// Render produces the final HTML document for one page source. The page's
// front matter language, when set, overrides the build language for dynPath
// resolution on that page. cssHref is the relative stylesheet location from
// the page's output position.
func Render(src []byte, ctx shortcode.Context, cssHref string) ([]byte, FrontMatter, error) {
	fm, body, err := Split(src)
	if err != nil {
		return nil, fm, fmt.Errorf("page %s: %w", ctx.PagePath, err)
	}
	if fm.Lang != "" {
		ctx.Language = fm.Lang
	}

	// Directives expand to placeholders first: their rendered HTML can hold
	// blank lines, which would terminate a raw HTML block mid-conversion.
	expanded, blocks, err := shortcode.ExpandDeferred(string(body), ctx)
	if err != nil {
		return nil, fm, err
	}

	var bodyHTML bytes.Buffer
	if err := markdown.Convert([]byte(expanded), &bodyHTML); err != nil {
		return nil, fm, fmt.Errorf("page %s: render markdown: %w", ctx.PagePath, err)
	}
	rendered := shortcode.Substitute(bodyHTML.String(), blocks)

	title := fm.Title
	if title == "" {
		title = ctx.PagePath
	}
	if cssHref == "" {
		cssHref = render.StylesheetName
	}

	var out bytes.Buffer
	data := struct {
		Title   string
		CSSHref string
		Body    template.HTML
	}{Title: title, CSSHref: cssHref, Body: template.HTML(rendered)}
	if err := shell.Execute(&out, data); err != nil {
		return nil, fm, fmt.Errorf("page %s: execute shell: %w", ctx.PagePath, err)
	}
	return out.Bytes(), fm, nil
}

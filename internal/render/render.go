// Package render turns an extracted excerpt into the HTML block embedded in a
// documentation page: a file-name header, an optional view-source link, and a
// syntax-highlighted code region with highlight ranges and an optional
// line-number gutter.
package render

import (
	"fmt"
	"html"
	"io"
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/snipdoc/snipdoc/internal/excerpt"
)

// styleName selects the chroma style whose classes the stylesheet targets.
const styleName = "github"

// Block renders one excerpt as an HTML snippet block. fileName labels the
// header; an empty name hides the header's file label (inline fallbacks have
// no file). The directive's LineNos flag requests a gutter starting at the
// excerpt's first original line number.
func Block(d excerpt.Directive, res excerpt.Result, fileName string) (string, error) {
	code, err := highlight(res, d.LineNos)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<div class="snippet">` + "\n")
	b.WriteString(`<div class="snippet-header">`)
	if fileName != "" {
		b.WriteString(`<span class="snippet-file">` + html.EscapeString(path.Base(fileName)) + `</span>`)
	}
	if res.Permalink != "" {
		b.WriteString(`<a class="snippet-source" href="` + html.EscapeString(res.Permalink) + `" target="_blank" rel="noopener">View source</a>`)
	}
	b.WriteString("</div>\n")
	b.WriteString(`<div class="snippet-code">` + "\n")
	b.WriteString(code)
	b.WriteString("\n</div>\n</div>\n")
	return b.String(), nil
}

// highlight runs the chroma pipeline over the excerpt text. Highlight ranges
// are stored relative to the block, while chroma matches them against the
// displayed line numbers, so they shift by the gutter base when a gutter is
// requested.
func highlight(res excerpt.Result, lineNos bool) (string, error) {
	lexer := lexers.Get(res.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	opts := []chromahtml.Option{chromahtml.WithClasses(true)}
	base := 1
	if lineNos {
		base = res.FirstLine
		if base < 1 {
			base = 1
		}
		opts = append(opts, chromahtml.WithLineNumbers(true), chromahtml.BaseLineNumber(base))
	}
	if len(res.Highlights) > 0 {
		ranges := make([][2]int, 0, len(res.Highlights))
		for _, h := range res.Highlights {
			ranges = append(ranges, [2]int{h.Start + base - 1, h.End + base - 1})
		}
		opts = append(opts, chromahtml.HighlightLines(ranges))
	}

	formatter := chromahtml.New(opts...)
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	iterator, err := lexer.Tokenise(nil, res.Text())
	if err != nil {
		return "", fmt.Errorf("tokenise: %w", err)
	}
	var out strings.Builder
	if err := formatter.Format(&out, style, iterator); err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return out.String(), nil
}

// WriteCSS writes the site stylesheet: the embedded base rules followed by the
// chroma class definitions for the configured style.
func WriteCSS(w io.Writer) error {
	if _, err := w.Write(baseCSS); err != nil {
		return err
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.WithLineNumbers(true))
	if err := formatter.WriteCSS(w, style); err != nil {
		return fmt.Errorf("write chroma css: %w", err)
	}
	return nil
}

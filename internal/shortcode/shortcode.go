// Package shortcode expands include directives embedded in page sources.
// A directive looks like
//
//	{{< include path="examples/go/main.go" from="START" lines="2,5-7" >}}
//
// and is replaced in place by the rendered excerpt block. All expansion state
// is carried in an explicit Context; there is no ambient current-page global.
package shortcode

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/snipdoc/snipdoc/internal/excerpt"
	"github.com/snipdoc/snipdoc/internal/lookup"
	"github.com/snipdoc/snipdoc/internal/render"
)

var (
	includeRe = regexp.MustCompile(`\{\{<\s*include\s+(.*?)\s*>\}\}`)
	attrRe    = regexp.MustCompile(`(\w+)\s*=\s*(?:"([^"]*)"|(\S+))`)
)

// Context identifies the page being rendered and supplies the collaborators a
// directive may need: the directory source paths resolve against, the page's
// language for dynPath lookups, the lookup resolver, and a default repository
// URL for permalinks (an explicit gitHub attribute wins).
type Context struct {
	PagePath string
	Language string
	BaseDir  string
	Lookup   *lookup.Resolver
	GitHub   string
}

// Block is one expanded directive: the placeholder left in the content and
// the rendered HTML that replaces it after any Markdown conversion.
type Block struct {
	Placeholder string
	HTML        string
}

// Expand replaces every include directive in content with its rendered block.
// Any failure aborts the page: a broken include is an authoring bug, and a
// partially rendered page must not reach publication.
func Expand(content string, ctx Context) (string, error) {
	withPlaceholders, blocks, err := ExpandDeferred(content, ctx)
	if err != nil {
		return "", err
	}
	return Substitute(withPlaceholders, blocks), nil
}

// ExpandDeferred renders every directive but leaves an HTML-comment
// placeholder in its place. Rendered code regions can contain blank lines,
// which a Markdown converter would treat as the end of a raw HTML block, so
// the page pipeline converts Markdown first and substitutes blocks afterwards.
func ExpandDeferred(content string, ctx Context) (string, []Block, error) {
	if ctx.Lookup == nil {
		ctx.Lookup = lookup.Empty()
	}
	matches := includeRe.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil, nil
	}

	var b strings.Builder
	var blocks []Block
	prev := 0
	for _, m := range matches {
		b.WriteString(content[prev:m[0]])
		raw := content[m[2]:m[3]]
		html, err := expandOne(raw, ctx)
		if err != nil {
			return "", nil, fmt.Errorf("page %s: include %s: %w", ctx.PagePath, raw, err)
		}
		ph := fmt.Sprintf("<!--snipdoc:%d-->", len(blocks))
		blocks = append(blocks, Block{Placeholder: ph, HTML: html})
		b.WriteString(ph)
		prev = m[1]
	}
	b.WriteString(content[prev:])
	return b.String(), blocks, nil
}

// Substitute swaps the placeholders back for their rendered blocks.
func Substitute(content string, blocks []Block) string {
	for _, blk := range blocks {
		content = strings.Replace(content, blk.Placeholder, blk.HTML, 1)
	}
	return content
}

func expandOne(raw string, ctx Context) (string, error) {
	d, err := parseAttrs(raw)
	if err != nil {
		return "", err
	}
	if err := d.Validate(); err != nil {
		return "", err
	}

	doc, display, err := resolveSource(d, ctx)
	if err != nil {
		return "", err
	}
	if d.GitHub == "" {
		d.GitHub = ctx.GitHub
	}
	// Permalinks only apply to file-backed sources with a default base too.
	if doc.Path == "" {
		d.GitHub = ""
	}

	res, err := excerpt.Extract(doc, d)
	if err != nil {
		return "", err
	}
	// The page's language is the last-resort syntax tag, covering inline
	// fallback snippets that have no file extension to detect from.
	res.Language = excerpt.DetectLanguage(doc.Path, d.Syntax, ctx.Language)

	return render.Block(d, res, display)
}

// resolveSource loads the directive's document: a static path, a dynPath
// lookup for the page's language, or the registered inline fallback snippet.
func resolveSource(d excerpt.Directive, ctx Context) (excerpt.Document, string, error) {
	if d.Path != "" {
		doc, err := excerpt.LoadFile(filepath.Join(ctx.BaseDir, filepath.FromSlash(d.Path)))
		if err != nil {
			return excerpt.Document{}, "", err
		}
		// Keep the authored relative path for display and permalinks.
		doc.Path = d.Path
		return doc, d.Path, nil
	}

	if p, ok := ctx.Lookup.Resolve(d.DynPath, ctx.Language); ok {
		doc, err := excerpt.LoadFile(filepath.Join(ctx.BaseDir, filepath.FromSlash(p)))
		if err != nil {
			return excerpt.Document{}, "", err
		}
		doc.Path = p
		return doc, p, nil
	}
	if d.Fallback != "" {
		if snippet, ok := ctx.Lookup.Fallback(d.Fallback); ok {
			return excerpt.FromString(snippet), "", nil
		}
		return excerpt.Document{}, "", fmt.Errorf("fallback key %q has no registered snippet", d.Fallback)
	}
	return excerpt.Document{}, "", fmt.Errorf("dynPath %q has no entry for language %q and no fallback", d.DynPath, ctx.Language)
}

func parseAttrs(raw string) (excerpt.Directive, error) {
	var d excerpt.Directive
	seen := map[string]bool{}
	for _, m := range attrRe.FindAllStringSubmatch(raw, -1) {
		key := m[1]
		val := m[2]
		if val == "" && m[3] != "" {
			val = m[3]
		}
		if seen[key] {
			return d, fmt.Errorf("duplicate attribute %q", key)
		}
		seen[key] = true
		switch key {
		case "path":
			d.Path = val
		case "dynPath":
			d.DynPath = val
		case "fallback":
			d.Fallback = val
		case "syntax":
			d.Syntax = val
		case "from":
			d.From = val
		case "to":
			d.To = val
		case "hlFrom":
			d.HlFrom = val
		case "hlTo":
			d.HlTo = val
		case "lines":
			d.Lines = val
		case "gitHub":
			d.GitHub = val
		case "linenos":
			v, err := strconv.ParseBool(val)
			if err != nil {
				return d, fmt.Errorf("linenos %q: %v", val, err)
			}
			d.LineNos = v
		default:
			return d, fmt.Errorf("unknown attribute %q", key)
		}
	}
	return d, nil
}

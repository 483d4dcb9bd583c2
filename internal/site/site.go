// Package site builds a content tree of Markdown pages into a mirrored tree
// of HTML output. Every page render is independent and stateless, so pages
// build in parallel; the first authoring error aborts the whole build, since
// broken documentation must not publish partially.
package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/snipdoc/snipdoc/internal/lookup"
	"github.com/snipdoc/snipdoc/internal/page"
	"github.com/snipdoc/snipdoc/internal/render"
	"github.com/snipdoc/snipdoc/internal/shortcode"
)

// Options configures one build.
type Options struct {
	// ContentDir holds the Markdown page sources.
	ContentDir string
	// OutDir receives the rendered HTML tree and the stylesheet.
	OutDir string
	// BaseDir is the root example source paths resolve against. Defaults to
	// ContentDir's parent so content/ and examples/ can sit side by side.
	BaseDir string
	// Language is the build-wide default for dynPath lookups; a page's front
	// matter lang overrides it.
	Language string
	// GitHub is the default permalink base; a directive's gitHub wins.
	GitHub string
	// Lookup resolves dynPath keys. Nil means no dynamic examples.
	Lookup *lookup.Resolver
	// Workers bounds parallel page renders. Zero means GOMAXPROCS.
	Workers int
}

// Build renders every .md page under ContentDir and returns the page count.
func Build(ctx context.Context, opts Options) (int, error) {
	if opts.ContentDir == "" || opts.OutDir == "" {
		return 0, fmt.Errorf("content and output directories are required")
	}
	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(filepath.Clean(opts.ContentDir))
	}
	if opts.Lookup == nil {
		opts.Lookup = lookup.Empty()
	}

	pages, err := listPages(opts.ContentDir)
	if err != nil {
		return 0, fmt.Errorf("scan content: %w", err)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, rel := range pages {
		rel := rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return buildPage(rel, opts)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := writeStylesheet(opts.OutDir); err != nil {
		return 0, err
	}
	log.Info().Int("pages", len(pages)).Str("out", opts.OutDir).Msg("site built")
	return len(pages), nil
}

func buildPage(rel string, opts Options) error {
	src, err := os.ReadFile(filepath.Join(opts.ContentDir, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("read page %s: %w", rel, err)
	}

	ctx := shortcode.Context{
		PagePath: rel,
		Language: opts.Language,
		BaseDir:  opts.BaseDir,
		Lookup:   opts.Lookup,
		GitHub:   opts.GitHub,
	}
	out, _, err := page.Render(src, ctx, cssHref(rel))
	if err != nil {
		return err
	}

	dst := filepath.Join(opts.OutDir, filepath.FromSlash(outputPath(rel)))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", rel, err)
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return fmt.Errorf("write page %s: %w", rel, err)
	}
	log.Debug().Str("page", rel).Msg("rendered")
	return nil
}

func writeStylesheet(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(outDir, render.StylesheetName))
	if err != nil {
		return fmt.Errorf("create stylesheet: %w", err)
	}
	defer f.Close()
	if err := render.WriteCSS(f); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return nil
}

func listPages(dir string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories like .git in a docs checkout.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(p, ".md") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		pages = append(pages, filepath.ToSlash(rel))
		return nil
	})
	return pages, err
}

// outputPath mirrors a page source path into the output tree.
func outputPath(rel string) string {
	return strings.TrimSuffix(rel, ".md") + ".html"
}

// cssHref computes the relative stylesheet location from a page's depth.
func cssHref(rel string) string {
	depth := strings.Count(rel, "/")
	return strings.Repeat("../", depth) + render.StylesheetName
}

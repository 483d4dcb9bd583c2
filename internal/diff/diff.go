// Package diff compares two built documentation trees, typically a pull
// request's generated output against its base branch. Pages are compared on
// normalized visible text so a rendering-engine upgrade that only reshuffles
// markup does not read as a content change.
package diff

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PageChange describes one changed page with line-level counts over the
// normalized text.
type PageChange struct {
	Path         string
	LinesAdded   int
	LinesDeleted int
}

// Report is the structured result of comparing two output trees.
type Report struct {
	OldDir    string
	NewDir    string
	Added     []string
	Removed   []string
	Changed   []PageChange
	Unchanged int
}

// Identical reports whether the two trees carry the same visible content.
func (r Report) Identical() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Trees walks both directories for .html pages and compares them pairwise.
func Trees(oldDir, newDir string) (Report, error) {
	oldPages, err := listPages(oldDir)
	if err != nil {
		return Report{}, fmt.Errorf("scan %s: %w", oldDir, err)
	}
	newPages, err := listPages(newDir)
	if err != nil {
		return Report{}, fmt.Errorf("scan %s: %w", newDir, err)
	}

	r := Report{OldDir: oldDir, NewDir: newDir}
	for _, p := range newPages {
		if !contains(oldPages, p) {
			r.Added = append(r.Added, p)
		}
	}
	for _, p := range oldPages {
		if !contains(newPages, p) {
			r.Removed = append(r.Removed, p)
			continue
		}
		oldText, err := normalizedFile(filepath.Join(oldDir, p))
		if err != nil {
			return Report{}, err
		}
		newText, err := normalizedFile(filepath.Join(newDir, p))
		if err != nil {
			return Report{}, err
		}
		if oldText == newText {
			r.Unchanged++
			continue
		}
		added, deleted := diffLines(strings.Split(oldText, "\n"), strings.Split(newText, "\n"))
		r.Changed = append(r.Changed, PageChange{Path: p, LinesAdded: added, LinesDeleted: deleted})
	}
	return r, nil
}

// WriteSummary prints a terse, review-oriented listing of the report.
func (r Report) WriteSummary(w io.Writer) {
	if r.Identical() {
		fmt.Fprintf(w, "no content changes (%d pages)\n", r.Unchanged)
		return
	}
	for _, p := range r.Added {
		fmt.Fprintf(w, "A %s\n", p)
	}
	for _, p := range r.Removed {
		fmt.Fprintf(w, "R %s\n", p)
	}
	for _, c := range r.Changed {
		fmt.Fprintf(w, "M %s (+%d -%d)\n", c.Path, c.LinesAdded, c.LinesDeleted)
	}
	fmt.Fprintf(w, "%d added, %d removed, %d changed, %d unchanged\n",
		len(r.Added), len(r.Removed), len(r.Changed), r.Unchanged)
}

func listPages(dir string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		pages = append(pages, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(pages)
	return pages, nil
}

func normalizedFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return NormalizeHTML(b), nil
}

func contains(sorted []string, s string) bool {
	i := sort.SearchStrings(sorted, s)
	return i < len(sorted) && sorted[i] == s
}

// diffLines counts inserted and deleted lines between two sequences using a
// longest-common-subsequence table. Documentation pages are small, so the
// quadratic table is fine; pathological sizes fall back to full replacement
// counts.
func diffLines(oldLines, newLines []string) (added, deleted int) {
	const maxCells = 4 << 20
	n, m := len(oldLines), len(newLines)
	if n == 0 {
		return m, 0
	}
	if m == 0 {
		return 0, n
	}
	if n*m > maxCells {
		return m, n
	}
	lcs := make([]int, (n+1)*(m+1))
	idx := func(i, j int) int { return i*(m+1) + j }
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[idx(i, j)] = lcs[idx(i+1, j+1)] + 1
			} else if lcs[idx(i+1, j)] >= lcs[idx(i, j+1)] {
				lcs[idx(i, j)] = lcs[idx(i+1, j)]
			} else {
				lcs[idx(i, j)] = lcs[idx(i, j+1)]
			}
		}
	}
	common := lcs[idx(0, 0)]
	return m - common, n - common
}

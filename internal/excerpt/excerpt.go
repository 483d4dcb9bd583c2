// Package excerpt extracts annotated line ranges from source files for
// embedding in documentation pages. An extraction is a pure pipeline over an
// immutable line sequence: load, trim by content markers, re-slice by explicit
// line segments, consume highlight markers, finalize. Each stage takes and
// returns its own slice, so stages stay independently testable and a render
// call never mutates shared state.
package excerpt

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// ElisionMark is the visible placeholder rendered between two non-adjacent
// selected segments. The renderer styles rows carrying it as omitted content.
const ElisionMark = "…"

// Document is an immutable ordered sequence of source lines plus the origin
// path when loaded from disk. Literal documents carry an empty Path.
type Document struct {
	Path  string
	Lines []string
}

// Range is a 1-based inclusive span of rendered rows flagged for emphasis.
type Range struct {
	Start int
	End   int
}

func (r Range) String() string { return fmt.Sprintf("%d-%d", r.Start, r.End) }

// Result is the output of one extraction. Lines holds the final rendered
// sequence including any elision placeholders; Elisions lists the 1-based rows
// occupied by an ElisionMark so renderers need not match on content.
// FirstLine and LastLine are 1-based positions in the original file, suitable
// for a line-number gutter and for permalink fragments.
type Result struct {
	Lines      []string
	FirstLine  int
	LastLine   int
	Highlights []Range
	Elisions   []int
	Language   string
	Permalink  string
}

// Text joins the rendered lines with newlines.
func (r Result) Text() string { return strings.Join(r.Lines, "\n") }

// LoadError reports a source file that could not be read or decoded. A missing
// or unreadable example file is an authoring bug, so callers are expected to
// fail the page build rather than recover.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load source %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// ErrMarkerNotFound indicates a from/to/highlight marker that never matched a
// line. Defaulting the boundary silently would hide the problem; surfacing
// it prevents publishing a wrong range after the example file drifts.
var ErrMarkerNotFound = fmt.Errorf("marker not found")

// LoadFile reads a source file as UTF-8 text and splits it into lines.
// CRLF endings are normalized and a single trailing newline does not produce
// a trailing empty line, so joining the lines round-trips the content.
func LoadFile(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &LoadError{Path: path, Err: err}
	}
	if !utf8.Valid(b) {
		return Document{}, &LoadError{Path: path, Err: fmt.Errorf("not valid UTF-8")}
	}
	return Document{Path: path, Lines: splitLines(string(b))}, nil
}

// FromString builds a literal document, e.g. a fallback snippet for a page
// that has no applicable example file.
func FromString(content string) Document {
	return Document{Lines: splitLines(content)}
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Extract runs the full pipeline for one directive against a loaded document.
// The document is never modified; every stage works on a fresh slice.
func Extract(doc Document, d Directive) (Result, error) {
	trimmed, first, last, err := trim(doc.Lines, d)
	if err != nil {
		return Result{}, err
	}

	lines := trimmed
	if strings.TrimSpace(d.Lines) != "" {
		segs, err := ParseLineSpec(d.Lines)
		if err != nil {
			return Result{}, &ConfigError{Reason: fmt.Sprintf("lines %q: %v", d.Lines, err)}
		}
		lines = slice(trimmed, segs)
		// The displayed range spans the first segment's start through the
		// last segment's end, anchored at the trimmed range's origin.
		if len(segs) > 0 {
			base := first
			first = base + segs[0].Start - 1
			last = base + segs[len(segs)-1].End - 1
		}
	}

	lines, highlights, err := dehighlight(lines, d)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Lines:      lines,
		FirstLine:  first,
		LastLine:   last,
		Highlights: highlights,
		Elisions:   elisionRows(lines),
		Language:   DetectLanguage(doc.Path, d.Syntax, ""),
	}
	if d.GitHub != "" && doc.Path != "" {
		res.Permalink = Permalink(d.GitHub, doc.Path, first, last)
	}
	return res, nil
}

// trim applies the from/to content markers. The kept range is the open
// interval between the first line containing From and the first line after it
// containing To; both marker lines are excluded. A line that also carries the
// corresponding highlight marker is skipped during the scan so overlapping
// markers stay unambiguous. Returns the kept lines and their 1-based first and
// last positions in the original document.
func trim(lines []string, d Directive) ([]string, int, int, error) {
	start := 0
	end := len(lines)

	if d.From != "" {
		idx := -1
		for i, line := range lines {
			if strings.Contains(line, d.From) && (d.HlFrom == "" || !strings.Contains(line, d.HlFrom)) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, 0, 0, fmt.Errorf("from marker %q: %w", d.From, ErrMarkerNotFound)
		}
		start = idx + 1
	}
	if d.To != "" {
		idx := -1
		for i := start; i < len(lines); i++ {
			if strings.Contains(lines[i], d.To) && (d.HlTo == "" || !strings.Contains(lines[i], d.HlTo)) {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, 0, 0, fmt.Errorf("to marker %q: %w", d.To, ErrMarkerNotFound)
		}
		end = idx
	}
	if start > end {
		start = end
	}
	out := make([]string, end-start)
	copy(out, lines[start:end])
	if len(out) == 0 {
		return out, start + 1, start, nil
	}
	return out, start + 1, end, nil
}

// slice re-slices trimmed content by explicit 1-based segments, inserting the
// three-entry elision placeholder between non-adjacent groups. Segments keep
// their declared order; a segment entirely out of range contributes nothing.
func slice(lines []string, segs []Segment) []string {
	var out []string
	for i, s := range segs {
		if i > 0 && segs[i-1].End+1 != s.Start {
			out = append(out, "", ElisionMark, "")
		}
		lo := s.Start - 1
		hi := s.End
		if lo < 0 {
			lo = 0
		}
		if hi > len(lines) {
			hi = len(lines)
		}
		if lo >= hi {
			continue
		}
		out = append(out, lines[lo:hi]...)
	}
	return out
}

// elisionRows reports the 1-based rows occupied by an ElisionMark in the
// final sequence so renderers can style them without matching content again.
func elisionRows(lines []string) []int {
	var rows []int
	for i, line := range lines {
		if line == ElisionMark {
			rows = append(rows, i+1)
		}
	}
	return rows
}

// dehighlight consumes a paired HlFrom/HlTo marker. The reported range starts
// at the HlFrom marker's own offset (where the following content lands once
// the marker is removed) and ends one row before the HlTo marker. First match
// wins per marker; both marker lines are removed from the output. An unpaired
// marker is a deliberate no-op.
func dehighlight(lines []string, d Directive) ([]string, []Range, error) {
	if d.HlFrom == "" || d.HlTo == "" {
		return lines, nil, nil
	}
	from := -1
	for i, line := range lines {
		if strings.Contains(line, d.HlFrom) {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, nil, fmt.Errorf("hlFrom marker %q: %w", d.HlFrom, ErrMarkerNotFound)
	}
	to := -1
	for i := from + 1; i < len(lines); i++ {
		if strings.Contains(lines[i], d.HlTo) {
			to = i
			break
		}
	}
	if to < 0 {
		return nil, nil, fmt.Errorf("hlTo marker %q: %w", d.HlTo, ErrMarkerNotFound)
	}

	out := make([]string, 0, len(lines)-2)
	out = append(out, lines[:from]...)
	out = append(out, lines[from+1:to]...)
	out = append(out, lines[to+1:]...)

	return out, []Range{{Start: from + 1, End: to}}, nil
}

package excerpt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func numberedDoc(n int) Document {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return Document{Lines: lines}
}

func TestExtract_NoDirectivesReproducesSource(t *testing.T) {
	doc := numberedDoc(5)
	res, err := Extract(doc, Directive{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(res.Lines, doc.Lines) {
		t.Fatalf("expected identical lines, got %q", res.Lines)
	}
	if res.FirstLine != 1 || res.LastLine != 5 {
		t.Fatalf("expected range 1-5, got %d-%d", res.FirstLine, res.LastLine)
	}
}

func TestExtract_FromToExcludesMarkersAndOutside(t *testing.T) {
	doc := Document{Lines: []string{
		"before",
		"// START",
		"kept one",
		"kept two",
		"// END",
		"after",
	}}
	res, err := Extract(doc, Directive{From: "START", To: "END"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"kept one", "kept two"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Fatalf("expected %q, got %q", want, res.Lines)
	}
	if res.FirstLine != 3 || res.LastLine != 4 {
		t.Fatalf("expected file range 3-4, got %d-%d", res.FirstLine, res.LastLine)
	}
}

func TestExtract_FromMarkerMissingIsError(t *testing.T) {
	_, err := Extract(numberedDoc(3), Directive{From: "NOPE"})
	if !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}
}

func TestExtract_ToMarkerMissingIsError(t *testing.T) {
	_, err := Extract(numberedDoc(3), Directive{To: "NOPE"})
	if !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}
}

func TestExtract_SegmentsWithElision(t *testing.T) {
	res, err := Extract(numberedDoc(20), Directive{Lines: "2,5-7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"line 2", "", ElisionMark, "", "line 5", "line 6", "line 7"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Fatalf("expected %q, got %q", want, res.Lines)
	}
	if !reflect.DeepEqual(res.Elisions, []int{3}) {
		t.Fatalf("expected elision row 3, got %v", res.Elisions)
	}
	if res.FirstLine != 2 || res.LastLine != 7 {
		t.Fatalf("expected displayed range 2-7, got %d-%d", res.FirstLine, res.LastLine)
	}
}

func TestExtract_AdjacentSegmentsJoinWithoutElision(t *testing.T) {
	res, err := Extract(numberedDoc(10), Directive{Lines: "2,3-4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"line 2", "line 3", "line 4"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Fatalf("expected %q, got %q", want, res.Lines)
	}
	if len(res.Elisions) != 0 {
		t.Fatalf("expected no elisions, got %v", res.Elisions)
	}
}

func TestExtract_SegmentsApplyAfterTrim(t *testing.T) {
	doc := Document{Lines: []string{
		"// START",
		"alpha",
		"beta",
		"gamma",
		"delta",
		"// END",
	}}
	res, err := Extract(doc, Directive{From: "START", To: "END", Lines: "1,4"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"alpha", "", ElisionMark, "", "delta"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Fatalf("expected %q, got %q", want, res.Lines)
	}
	// Displayed range anchors at the trimmed range's origin in the file.
	if res.FirstLine != 2 || res.LastLine != 5 {
		t.Fatalf("expected displayed range 2-5, got %d-%d", res.FirstLine, res.LastLine)
	}
}

func TestExtract_OutOfRangeSegmentContributesNothing(t *testing.T) {
	res, err := Extract(numberedDoc(3), Directive{Lines: "2,10-12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"line 2", "", ElisionMark, ""}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Fatalf("expected %q, got %q", want, res.Lines)
	}
}

func TestExtract_HighlightRangeAndMarkerRemoval(t *testing.T) {
	doc := Document{Lines: []string{
		"line 1",
		"line 2",
		"// HL-START",
		"highlighted",
		"// HL-END",
		"line 6",
		"line 7",
		"line 8",
		"line 9",
		"line 10",
	}}
	res, err := Extract(doc, Directive{HlFrom: "HL-START", HlTo: "HL-END"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Highlights) != 1 || res.Highlights[0].String() != "3-4" {
		t.Fatalf("expected highlight range 3-4, got %v", res.Highlights)
	}
	joined := res.Text()
	if strings.Contains(joined, "HL-START") || strings.Contains(joined, "HL-END") {
		t.Fatalf("marker lines must be absent from output, got %q", joined)
	}
	if len(res.Lines) != 8 {
		t.Fatalf("expected 8 lines after marker removal, got %d", len(res.Lines))
	}
}

func TestExtract_UnpairedHighlightMarkerIsNoOp(t *testing.T) {
	doc := Document{Lines: []string{"a", "// HL", "b"}}
	res, err := Extract(doc, Directive{HlFrom: "HL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Highlights) != 0 {
		t.Fatalf("expected no highlights, got %v", res.Highlights)
	}
	if len(res.Lines) != 3 {
		t.Fatalf("expected all lines kept, got %q", res.Lines)
	}
}

func TestExtract_PairedHighlightMarkerMissingIsError(t *testing.T) {
	doc := Document{Lines: []string{"a", "// HL", "b"}}
	_, err := Extract(doc, Directive{HlFrom: "HL", HlTo: "NOPE"})
	if !errors.Is(err, ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}
}

func TestExtract_FromMarkerSkipsHighlightStartLine(t *testing.T) {
	// The from marker scan must not stop on a line that carries the highlight
	// start marker, so overlapping marker text stays unambiguous.
	doc := Document{Lines: []string{
		"// MARK HL-A",
		"// MARK",
		"// HL-A",
		"hot",
		"// HL-B",
		"// DONE",
	}}
	res, err := Extract(doc, Directive{From: "MARK", To: "DONE", HlFrom: "HL-A", HlTo: "HL-B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FirstLine != 3 {
		t.Fatalf("expected trim to start after line 2, got first line %d", res.FirstLine)
	}
	want := []string{"hot"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Fatalf("expected %q, got %q", want, res.Lines)
	}
	if len(res.Highlights) != 1 || res.Highlights[0].String() != "1-2" {
		t.Fatalf("expected highlight range 1-2, got %v", res.Highlights)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	doc := numberedDoc(12)
	d := Directive{Lines: "2,5-7,10"}
	a, err := Extract(doc, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Extract(doc, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Text() != b.Text() {
		t.Fatalf("expected identical output, got %q vs %q", a.Text(), b.Text())
	}
}

func TestExtract_PermalinkUsesComputedRange(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "examples", "a")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	var b strings.Builder
	for i := 1; i <= 20; i++ {
		fmt.Fprintf(&b, "row %d\n", i)
	}
	src := filepath.Join(sub, "b.js")
	if err := os.WriteFile(src, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := LoadFile(src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Use a relative-style path for the permalink prefix stripping.
	doc.Path = "examples/a/b.js"
	res, err := Extract(doc, Directive{Lines: "10-15", GitHub: "https://github.com/org/repo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://github.com/org/repo/blob/main/b.js#L10-L15"
	if res.Permalink != want {
		t.Fatalf("expected %q, got %q", want, res.Permalink)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.go"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestLoadFile_RejectsInvalidUTF8(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bin.dat")
	if err := os.WriteFile(p, []byte{0xff, 0xfe, 0x00, 0x01}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(p); err == nil {
		t.Fatalf("expected decode error for invalid UTF-8")
	}
}

func TestLoadFile_RoundTripsContent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "src.go")
	content := "package main\n\nfunc main() {}\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	res, err := Extract(doc, Directive{})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Text()+"\n" != content {
		t.Fatalf("expected round trip, got %q", res.Text())
	}
}

func TestDirectiveValidate(t *testing.T) {
	cases := []struct {
		name    string
		d       Directive
		wantErr bool
	}{
		{"path only", Directive{Path: "a.go"}, false},
		{"dynPath only", Directive{DynPath: "example"}, false},
		{"dynPath with fallback", Directive{DynPath: "example", Fallback: "snippet"}, false},
		{"path and dynPath", Directive{Path: "a.go", DynPath: "example"}, true},
		{"path and fallback", Directive{Path: "a.go", Fallback: "snippet"}, true},
		{"no source", Directive{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr {
				var ce *ConfigError
				if !errors.As(err, &ce) {
					t.Fatalf("expected ConfigError, got %v", err)
				}
			}
		})
	}
}

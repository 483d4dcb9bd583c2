package excerpt

import (
	"reflect"
	"testing"
)

func TestParseLineSpec_OrderAndCount(t *testing.T) {
	segs, err := ParseLineSpec("2,5-7,10-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Segment{{2, 2}, {5, 7}, {10, 15}}
	if !reflect.DeepEqual(segs, want) {
		t.Fatalf("expected %v, got %v", want, segs)
	}
	total := 0
	for _, s := range segs {
		total += s.Len()
	}
	if total != 1+3+6 {
		t.Fatalf("expected 10 selected lines, got %d", total)
	}
}

func TestParseLineSpec_NoSortingOrDedup(t *testing.T) {
	segs, err := ParseLineSpec("10-12,2,2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Segment{{10, 12}, {2, 2}, {2, 2}}
	if !reflect.DeepEqual(segs, want) {
		t.Fatalf("expected declared order preserved, got %v", segs)
	}
}

func TestParseLineSpec_TrimsSpaces(t *testing.T) {
	segs, err := ParseLineSpec(" 1 , 3 - 4 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Segment{{1, 1}, {3, 4}}
	if !reflect.DeepEqual(segs, want) {
		t.Fatalf("expected %v, got %v", want, segs)
	}
}

func TestParseLineSpec_Invalid(t *testing.T) {
	for _, spec := range []string{"", "a", "1,,3", "0", "-1", "5-3", "1-x"} {
		if _, err := ParseLineSpec(spec); err == nil {
			t.Fatalf("expected error for %q", spec)
		}
	}
}

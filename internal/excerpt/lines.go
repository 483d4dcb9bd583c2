package excerpt

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one contiguous run of selected lines, 1-based and inclusive on
// both ends. A single line n is the segment n..n.
type Segment struct {
	Start int
	End   int
}

// Len reports the number of lines the segment selects.
func (s Segment) Len() int { return s.End - s.Start + 1 }

// ParseLineSpec parses a segment spec such as "2,5-7,10-15" into segments in
// declaration order. Order is significant downstream (it defines output order
// and where elisions fall), so segments are neither sorted nor deduplicated.
func ParseLineSpec(spec string) ([]Segment, error) {
	parts := strings.Split(spec, ",")
	segs := make([]Segment, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty segment in %q", spec)
		}
		lo, hi, found := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("segment %q: %v", part, err)
		}
		end := start
		if found {
			end, err = strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("segment %q: %v", part, err)
			}
		}
		if start < 1 {
			return nil, fmt.Errorf("segment %q: line numbers are 1-based", part)
		}
		if end < start {
			return nil, fmt.Errorf("segment %q: end before start", part)
		}
		segs = append(segs, Segment{Start: start, End: end})
	}
	return segs, nil
}

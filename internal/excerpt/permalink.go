package excerpt

import (
	"fmt"
	"path"
	"strings"
)

// permalinkStripDepth is how many leading path elements are dropped before
// joining the source path onto the repository URL. Example files live two
// directories below the repository root in the documentation tree, so the
// hosted path starts after that prefix.
const permalinkStripDepth = 2

// Permalink builds a link to the hosted copy of a source file at the computed
// line range, e.g. https://github.com/org/repo/blob/main/b.js#L10-L15.
func Permalink(base, srcPath string, first, last int) string {
	rel := stripPrefix(filepathToSlash(srcPath), permalinkStripDepth)
	u := strings.TrimSuffix(base, "/") + "/blob/main/" + rel
	if first > 0 && last >= first {
		u += fmt.Sprintf("#L%d-L%d", first, last)
	}
	return u
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// stripPrefix removes up to depth leading elements from a slash path. A path
// shorter than the prefix keeps its final element so the link stays usable.
func stripPrefix(p string, depth int) string {
	p = path.Clean(strings.TrimPrefix(p, "/"))
	parts := strings.Split(p, "/")
	if len(parts) <= depth {
		return parts[len(parts)-1]
	}
	return strings.Join(parts[depth:], "/")
}

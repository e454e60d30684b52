// Package resolve implements the Module Resolver (C3): a pure function that
// normalises an import specifier relative to its importing module into a
// canonical module name.
package resolve

import (
	"path"
	"strings"
)

// Normalize maps (base, specifier) to a canonical module name.
//
// Non-relative specifiers pass through unchanged. Relative specifiers
// (leading "./" or "../") are joined against dirname(base) and walked
// component by component: "." is skipped, a normal component is appended,
// ".." pops the last component unless it is itself "..", in which case it is
// appended (preventing escape above the root-adjacent prefix), and a leading
// root clears everything accumulated so far.
//
// Normalize is total: it never touches the Source Tree and never fails.
func Normalize(base, specifier string) string {
	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return specifier
	}

	dir := path.Dir(base)
	if dir == "." {
		dir = ""
	}
	joined := path.Join(dir, specifier)

	var parts []string
	for _, component := range strings.Split(joined, "/") {
		switch component {
		case "", ".":
			// skip: empty components arise from a leading "/" or doubled
			// separators; "." is an explicit no-op component.
		case "..":
			if n := len(parts); n > 0 && parts[n-1] != ".." {
				parts = parts[:n-1]
			} else {
				parts = append(parts, "..")
			}
		default:
			parts = append(parts, component)
		}
	}

	return strings.Join(parts, "/")
}

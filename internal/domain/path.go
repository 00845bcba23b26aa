package domain

import "strings"

// PathSeparator joins path segments in their written form.
const PathSeparator = "."

// Path addresses a node by the category names walked from the tree root.
type Path []string

// ParsePath splits a dotted path, dropping empty segments.
func ParsePath(s string) Path {
	var p Path
	for _, seg := range strings.Split(s, PathSeparator) {
		if seg = strings.TrimSpace(seg); seg != "" {
			p = append(p, seg)
		}
	}
	return p
}

func (p Path) String() string {
	return strings.Join(p, PathSeparator)
}

// Label renders the path prefixed with a root label, e.g. "ROOT.options.exercise".
func (p Path) Label(root string) string {
	if len(p) == 0 {
		return root
	}
	if root == "" {
		return p.String()
	}
	return root + PathSeparator + p.String()
}

// Child returns a new path with name appended. The receiver is never aliased.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// Last returns the final segment, or "" for the root path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// TrimRoot removes a leading root label segment if present.
func (p Path) TrimRoot(root string) Path {
	if len(p) > 0 && root != "" && p[0] == root {
		return p[1:]
	}
	return p
}

package vfs

import "strings"

// Separator is the path separator of the virtual filesystem.
const Separator = "/"

// Path is an ordered list of segments from the root to a node.
// The empty Path addresses the root directory.
type Path []string

// Home is the fixed home directory of the session user.
var Home = Path{"home", "user"}

// Resolve turns a user supplied path into an absolute, normalized Path.
// Absolute input starts from the root, anything else starts from cwd.
// Empty tokens and "." are dropped, ".." pops one segment and never goes past the root.
// The returned Path never shares its backing array with cwd.
func Resolve(text string, cwd Path) Path {
	var out Path
	if !strings.HasPrefix(text, Separator) {
		out = make(Path, len(cwd), len(cwd)+4)
		copy(out, cwd)
	}

	for _, token := range strings.Split(text, Separator) {
		switch token {
		case "", ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, token)
		}
	}

	if out == nil {
		return Path{}
	}
	return out
}

// String renders the absolute form of the path, "/" for the root.
func (p Path) String() string {
	return Separator + strings.Join(p, Separator)
}

// IsRoot reports whether p addresses the root directory.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Parent returns the path of the containing directory. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	return p.clone()[:len(p)-1]
}

// Base returns the final segment, or "" for the root.
func (p Path) Base() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Child returns a new path with name appended.
func (p Path) Child(name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

// HasPrefix reports whether p is prefix or lies below it.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return prefix.Equal(p[:len(prefix)])
}

// Equal reports whether both paths name the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Path) clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// ValidName reports whether name may be stored as a directory entry.
func ValidName(name string) bool {
	switch name {
	case "", ".", "..":
		return false
	}
	return !strings.Contains(name, Separator)
}

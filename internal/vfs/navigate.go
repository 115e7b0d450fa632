package vfs

// Locate walks p from the root and returns the node it names.
// The empty path resolves to the root itself.
func (fs *Filesystem) Locate(p Path) (Node, error) {
	var current Node = fs.root
	for _, segment := range p {
		dir, ok := current.(*Directory)
		if !ok {
			return nil, &PathError{Op: "locate", Path: p, Err: ErrNotFound}
		}
		child, ok := dir.Child(segment)
		if !ok {
			return nil, &PathError{Op: "locate", Path: p, Err: ErrNotFound}
		}
		current = child
	}
	return current, nil
}

// LocateParent returns the directory that holds, or would hold, the final segment of p.
// The root has no parent, so an empty path is reported as not found.
func (fs *Filesystem) LocateParent(p Path) (*Directory, error) {
	if len(p) == 0 {
		return nil, &PathError{Op: "locate parent", Path: p, Err: ErrNotFound}
	}
	n, err := fs.Locate(p[:len(p)-1])
	if err != nil {
		return nil, err
	}
	dir, ok := n.(*Directory)
	if !ok {
		return nil, &PathError{Op: "locate parent", Path: p, Err: ErrNotADirectory}
	}
	return dir, nil
}

// WalkFunc is called for every node visited by Walk. rel is the path of the node
// relative to the walk root. Returning false from a directory skips its children.
type WalkFunc func(rel Path, n Node) bool

// Walk visits n and every node below it in pre-order, children in lexicographic order.
func Walk(n Node, fn WalkFunc) {
	walk(Path{}, n, fn)
}

func walk(rel Path, n Node, fn WalkFunc) {
	if !fn(rel, n) {
		return
	}
	switch n := n.(type) {
	case *Directory:
		n.Each(func(name string, child Node) bool {
			walk(rel.Child(name), child, fn)
			return true
		})
	case *File:
	}
}

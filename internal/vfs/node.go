package vfs

import (
	"fmt"

	"github.com/tidwall/btree"
)

// Node is a filesystem entry. It is a closed sum type: the only
// implementations are *Directory and *File.
type Node interface {
	node()
}

// Directory is a container mapping unique names to nodes.
// A Directory is never modified once it is reachable from a published Filesystem;
// With returns an updated copy instead.
type Directory struct {
	children *btree.Map[string, Node]
	// size counts the directory itself and every node below it.
	size int
}

// File is a leaf holding opaque text content.
type File struct {
	content string
}

func (*Directory) node() {}
func (*File) node()      {}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{children: btree.NewMap[string, Node](0), size: 1}
}

// NewFile returns a file holding content.
func NewFile(content string) *File {
	return &File{content: content}
}

// Content returns the text held by the file.
func (f *File) Content() string {
	return f.content
}

// Child returns the entry stored under name.
func (d *Directory) Child(name string) (Node, bool) {
	return d.children.Get(name)
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	return d.children.Len()
}

// Names returns the entry names in lexicographic order.
func (d *Directory) Names() []string {
	return d.children.Keys()
}

// Each calls fn for every entry in lexicographic order until fn returns false.
func (d *Directory) Each(fn func(name string, n Node) bool) {
	d.children.Scan(fn)
}

// With returns a copy of d where name maps to n. The receiver is left untouched;
// the copy shares unchanged btree nodes with it.
// It panics if name is not a valid entry name.
func (d *Directory) With(name string, n Node) *Directory {
	if !ValidName(name) {
		panic(fmt.Sprintf("vfs: invalid entry name %q", name))
	}
	if n == nil {
		panic("vfs: nil node")
	}
	cp := &Directory{children: d.children.Copy(), size: d.size + Size(n)}
	if old, replaced := cp.children.Set(name, n); replaced {
		cp.size -= Size(old)
	}
	return cp
}

// Size returns the number of nodes in the subtree rooted at d, d included.
func (d *Directory) Size() int {
	return d.size
}

// Size returns the number of nodes in the subtree rooted at n.
func Size(n Node) int {
	if d, ok := n.(*Directory); ok {
		return d.size
	}
	return 1
}

// IsDir reports whether n is a directory.
func IsDir(n Node) bool {
	_, ok := n.(*Directory)
	return ok
}

// Equal reports whether two trees hold the same names and file contents.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *File:
		bf, ok := b.(*File)
		return ok && a.content == bf.content
	case *Directory:
		bd, ok := b.(*Directory)
		if !ok || a.Len() != bd.Len() {
			return false
		}
		equal := true
		a.Each(func(name string, child Node) bool {
			other, ok := bd.Child(name)
			equal = ok && Equal(child, other)
			return equal
		})
		return equal
	default:
		return false
	}
}

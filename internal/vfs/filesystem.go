package vfs

// Filesystem is an immutable snapshot of a directory tree.
// Mutating operations return a new snapshot and leave the receiver valid and unchanged,
// so a reader holding an older snapshot never observes a partial write.
type Filesystem struct {
	root *Directory
}

// New returns a snapshot rooted at root. A nil root yields an empty filesystem.
func New(root *Directory) *Filesystem {
	if root == nil {
		root = NewDirectory()
	}
	return &Filesystem{root: root}
}

// Root returns the root directory.
func (fs *Filesystem) Root() *Directory {
	return fs.root
}

// Put returns a snapshot in which p names n. The parent of p must be an existing
// directory. Only the directories along p are copied; every other subtree is shared
// with the receiver.
func (fs *Filesystem) Put(p Path, n Node) (*Filesystem, error) {
	if len(p) == 0 {
		return nil, &PathError{Op: "put", Path: p, Err: ErrNotFound}
	}
	name := p.Base()
	if !ValidName(name) {
		return nil, &PathError{Op: "put", Path: p, Err: ErrInvalidName}
	}

	// Collect the directory chain from the root down to the parent.
	chain := make([]*Directory, 0, len(p))
	current := fs.root
	chain = append(chain, current)
	for _, segment := range p[:len(p)-1] {
		child, ok := current.Child(segment)
		if !ok {
			return nil, &PathError{Op: "put", Path: p, Err: ErrNotFound}
		}
		dir, ok := child.(*Directory)
		if !ok {
			return nil, &PathError{Op: "put", Path: p, Err: ErrNotADirectory}
		}
		current = dir
		chain = append(chain, current)
	}

	// Rebuild the chain bottom-up.
	var replacement Node = n
	for i := len(chain) - 1; i >= 0; i-- {
		replacement = chain[i].With(p[i], replacement)
	}

	return &Filesystem{root: replacement.(*Directory)}, nil
}

// Seed returns the filesystem every new session starts with.
func Seed() *Filesystem {
	user := NewDirectory().
		With("Projects", NewDirectory()).
		With("Documents", NewDirectory()).
		With("README.md", NewFile(WelcomeText))

	home := NewDirectory().With("user", user)
	return New(NewDirectory().With("home", home))
}

// WelcomeText is the content of the seeded ~/README.md.
const WelcomeText = "# Welcome to your Linux Web Terminal!\n\n" +
	"- This is a simulated terminal environment made by @divyansh_ai (on X formally twitter).\n" +
	"- Try commands like `ls`, `mkdir test`, `cd Projects`, `touch new_file.txt`, `cat README.md`"

package shell

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/Cyclone1070/vsh/internal/vfs"
	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// noArgs is used by commands that ignore their arguments.
type noArgs struct{}

type pathArgs struct {
	Path string `mapstructure:"path"`
}

type mkdirArgs struct {
	Name string `mapstructure:"name"`
}

func (a mkdirArgs) Validate() error {
	if a.Name == "" {
		return errors.New("mkdir: missing operand")
	}
	return nil
}

type touchArgs struct {
	Name string `mapstructure:"name"`
}

func (a touchArgs) Validate() error {
	if a.Name == "" {
		return errors.New("touch: missing file operand")
	}
	return nil
}

type glowArgs struct {
	Path string `mapstructure:"path"`
}

func (a glowArgs) Validate() error {
	if a.Path == "" {
		return errors.New("glow: missing file operand")
	}
	return nil
}

type findArgs struct {
	Args []string `mapstructure:"args"`
}

func (d *Dispatcher) pwd(_ context.Context, st State, _ noArgs) Result {
	return output(st.Cwd.String())
}

func (d *Dispatcher) ls(_ context.Context, st State, args pathArgs) Result {
	arg := args.Path
	if arg == "" {
		arg = "."
	}

	n, err := st.FS.Locate(vfs.Resolve(arg, st.Cwd))
	if err != nil {
		return failf("ls: cannot access '%s': No such file or directory", arg)
	}

	switch n := n.(type) {
	case *vfs.File:
		return output(arg)
	case *vfs.Directory:
		return output(strings.Join(n.Names(), "\n"))
	default:
		return failf("ls: cannot access '%s': No such file or directory", arg)
	}
}

func (d *Dispatcher) cd(_ context.Context, st State, args pathArgs) Result {
	arg := args.Path
	if arg == "" {
		arg = ".."
	}

	target := vfs.Resolve(arg, st.Cwd)
	if arg == "~" {
		target = append(vfs.Path{}, vfs.Home...)
	}

	n, err := st.FS.Locate(target)
	if err != nil {
		return failf("cd: %s: No such file or directory", arg)
	}
	if !vfs.IsDir(n) {
		return failf("cd: %s: Not a directory", arg)
	}
	return Result{Cwd: &target}
}

func (d *Dispatcher) mkdir(_ context.Context, st State, args mkdirArgs) Result {
	target := vfs.Resolve(args.Name, st.Cwd)

	parent, err := st.FS.LocateParent(target)
	if err != nil {
		return failf("mkdir: cannot create directory '%s': No such file or directory", args.Name)
	}
	if _, exists := parent.Child(target.Base()); exists {
		return failf("mkdir: cannot create directory '%s': File exists", args.Name)
	}

	next, err := st.FS.Put(target, vfs.NewDirectory())
	if err != nil {
		return failf("mkdir: cannot create directory '%s': No such file or directory", args.Name)
	}
	return Result{FS: next}
}

func (d *Dispatcher) touch(_ context.Context, st State, args touchArgs) Result {
	target := vfs.Resolve(args.Name, st.Cwd)

	parent, err := st.FS.LocateParent(target)
	if err != nil {
		return failf("touch: cannot touch '%s': No such file or directory", args.Name)
	}
	if _, exists := parent.Child(target.Base()); exists {
		return Result{}
	}

	next, err := st.FS.Put(target, vfs.NewFile(""))
	if err != nil {
		return failf("touch: cannot touch '%s': No such file or directory", args.Name)
	}
	return Result{FS: next}
}

func (d *Dispatcher) cat(_ context.Context, st State, args pathArgs) Result {
	if args.Path == "" {
		return Result{}
	}

	file, res, ok := readFile(st, "cat", args.Path)
	if !ok {
		return res
	}
	return output(file.Content())
}

func (d *Dispatcher) glow(_ context.Context, st State, args glowArgs) Result {
	file, res, ok := readFile(st, "glow", args.Path)
	if !ok {
		return res
	}
	if d.renderer == nil {
		return output(file.Content())
	}

	rendered, err := d.renderer.Render(file.Content(), d.renderWidth)
	if err != nil {
		d.logger.Warn("markdown render failed", zap.String("path", args.Path), zap.Error(err))
		return failf("glow: %s: %v", args.Path, err)
	}
	return output(strings.TrimRight(rendered, "\n"))
}

// readFile resolves arg to a file, or returns the error result cat-like commands print.
func readFile(st State, cmd, arg string) (*vfs.File, Result, bool) {
	n, err := st.FS.Locate(vfs.Resolve(arg, st.Cwd))
	if err != nil {
		return nil, failf("%s: %s: No such file or directory", cmd, arg), false
	}

	switch n := n.(type) {
	case *vfs.File:
		return n, Result{}, true
	case *vfs.Directory:
		return nil, failf("%s: %s: Is a directory", cmd, arg), false
	default:
		return nil, failf("%s: %s: No such file or directory", cmd, arg), false
	}
}

func (d *Dispatcher) tree(_ context.Context, st State, args pathArgs) Result {
	arg := args.Path
	if arg == "" {
		arg = "."
	}

	n, err := st.FS.Locate(vfs.Resolve(arg, st.Cwd))
	if err != nil {
		return failf("%s [error opening dir]", arg)
	}
	dir, ok := n.(*vfs.Directory)
	if !ok {
		return failf("%s [error opening dir]", arg)
	}

	var b strings.Builder
	b.WriteString(arg)
	dirs, files := drawTree(&b, dir, "")
	fmt.Fprintf(&b, "\n\n%s, %s", plural(dirs, "directory", "directories"), plural(files, "file", "files"))
	return output(b.String())
}

func drawTree(b *strings.Builder, dir *vfs.Directory, prefix string) (dirs, files int) {
	names := dir.Names()
	for i, name := range names {
		branch, indent := "├── ", "│   "
		if i == len(names)-1 {
			branch, indent = "└── ", "    "
		}
		b.WriteString("\n" + prefix + branch + name)

		child, _ := dir.Child(name)
		switch child := child.(type) {
		case *vfs.Directory:
			dirs++
			d, f := drawTree(b, child, prefix+indent)
			dirs += d
			files += f
		case *vfs.File:
			files++
		}
	}
	return dirs, files
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// findQuery holds the parsed find expression.
type findQuery struct {
	root    string
	name    string
	kind    string
	hasName bool
	hasKind bool
}

func parseFind(argv []string) (findQuery, error) {
	q := findQuery{root: "."}

	rest := argv
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
		q.root = rest[0]
		rest = rest[1:]
	}

	for len(rest) > 0 {
		flag := rest[0]
		switch flag {
		case "-name", "-type":
			if len(rest) < 2 {
				return q, fmt.Errorf("find: missing argument to '%s'", flag)
			}
			value := rest[1]
			if flag == "-name" {
				if !doublestar.ValidatePattern(value) {
					return q, fmt.Errorf("find: invalid pattern '%s'", value)
				}
				q.name, q.hasName = value, true
			} else {
				if value != "f" && value != "d" {
					return q, fmt.Errorf("find: Unknown argument to -type: %s", value)
				}
				q.kind, q.hasKind = value, true
			}
			rest = rest[2:]
		default:
			if !strings.HasPrefix(flag, "-") {
				return q, fmt.Errorf("find: paths must precede expression: '%s'", flag)
			}
			return q, fmt.Errorf("find: unknown predicate '%s'", flag)
		}
	}
	return q, nil
}

func (q findQuery) matches(name string, n vfs.Node) bool {
	if q.hasKind {
		if q.kind == "d" && !vfs.IsDir(n) {
			return false
		}
		if q.kind == "f" && vfs.IsDir(n) {
			return false
		}
	}
	if q.hasName {
		ok, err := doublestar.Match(q.name, name)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

func (d *Dispatcher) find(_ context.Context, st State, args findArgs) Result {
	q, err := parseFind(args.Args)
	if err != nil {
		return failf("%s", err.Error())
	}

	start, err := st.FS.Locate(vfs.Resolve(q.root, st.Cwd))
	if err != nil {
		return failf("find: '%s': No such file or directory", q.root)
	}

	var lines []string
	vfs.Walk(start, func(rel vfs.Path, n vfs.Node) bool {
		display := q.root
		name := path.Base(q.root)
		if len(rel) > 0 {
			display = strings.TrimSuffix(q.root, "/") + "/" + strings.Join(rel, "/")
			name = rel.Base()
		}
		if q.matches(name, n) {
			lines = append(lines, display)
		}
		return true
	})
	return output(strings.Join(lines, "\n"))
}

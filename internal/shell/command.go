package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cyclone1070/vsh/internal/vfs"
	"github.com/mitchellh/mapstructure"
)

// State is the part of the session a command can see.
type State struct {
	FS  *vfs.Filesystem
	Cwd vfs.Path
}

// Result is the outcome of one command.
// A nil FS or Cwd means the session keeps its current value.
type Result struct {
	Output string
	FS     *vfs.Filesystem
	Cwd    *vfs.Path

	failed bool
}

// Failed reports whether the command ended in an error message.
func (r Result) Failed() bool {
	return r.failed
}

func output(s string) Result {
	return Result{Output: s}
}

// Failure returns a Result whose output is an error message.
func Failure(msg string) Result {
	return Result{Output: msg, failed: true}
}

func failf(format string, a ...any) Result {
	return Failure(fmt.Sprintf(format, a...))
}

// Validator is implemented by argument types that check their own input.
// The returned error text is shown to the user as is.
type Validator interface {
	Validate() error
}

// Group orders commands in the help listing.
type Group int

const (
	GroupCore Group = iota
	GroupFun
)

// Command is a named built-in.
type Command interface {
	Name() string
	Usage() string
	Description() string
	Group() Group
	Run(ctx context.Context, st State, argv []string) Result
}

// Runner executes a command with typed arguments.
type Runner[A any] func(ctx context.Context, st State, args A) Result

// boundCommand decodes positional arguments into A before running.
type boundCommand[A any] struct {
	name        string
	usage       string
	description string
	group       Group
	params      []string
	run         Runner[A]
}

// newCommand builds a command whose positional arguments are bound, in order, to the
// mapstructure keys named by params. Every command also receives the full argument
// list under "args" and the space-joined arguments under "text".
func newCommand[A any](name, usage, description string, group Group, run func(context.Context, State, A) Result, params ...string) Command {
	return &boundCommand[A]{
		name:        name,
		usage:       usage,
		description: description,
		group:       group,
		params:      params,
		run:         run,
	}
}

func (c *boundCommand[A]) Name() string        { return c.name }
func (c *boundCommand[A]) Usage() string       { return c.usage }
func (c *boundCommand[A]) Description() string { return c.description }
func (c *boundCommand[A]) Group() Group        { return c.group }

func (c *boundCommand[A]) Run(ctx context.Context, st State, argv []string) Result {
	var args A
	if err := mapstructure.Decode(bindArgs(c.params, argv), &args); err != nil {
		return failf("%s: invalid arguments: %v", c.name, err)
	}

	if v, ok := any(args).(Validator); ok {
		if err := v.Validate(); err != nil {
			return failf("%s", err.Error())
		}
	}

	return c.run(ctx, st, args)
}

func bindArgs(params, argv []string) map[string]any {
	bound := map[string]any{
		"args": argv,
		"text": strings.Join(argv, " "),
	}
	for i, name := range params {
		if i < len(argv) {
			bound[name] = argv[i]
		}
	}
	return bound
}

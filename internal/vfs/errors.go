package vfs

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrNotFound      = errors.New("no such file or directory")
	ErrNotADirectory = errors.New("not a directory")
	ErrInvalidName   = errors.New("invalid name")
)

// -- Errors --

// PathError records the operation and path that failed.
type PathError struct {
	Op   string
	Path Path
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}
func (e *PathError) Unwrap() error { return e.Err }

package bookmarks

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownFormat = errors.New("unknown JSON format")
	ErrInvalidPath   = errors.New("invalid path")
	ErrMalformedTree = errors.New("malformed tree")
)

// PathError reports a path that does not resolve to a folder
type PathError struct {
	Path   Path
	Depth  int // index into Path where resolution stopped
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid path %q at depth %d: %s", e.Path.String(), e.Depth, e.Reason)
}

// Is allows errors.Is() to match against ErrInvalidPath
func (e *PathError) Is(target error) bool {
	return target == ErrInvalidPath
}

// TreeError reports a folder node without a children list
type TreeError struct {
	Title  string
	Reason string
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("malformed tree at %q: %s", e.Title, e.Reason)
}

// Is allows errors.Is() to match against ErrMalformedTree
func (e *TreeError) Is(target error) bool {
	return target == ErrMalformedTree
}

package bookmarks

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the classification of a raw node within its source format
type Kind int

const (
	KindOther Kind = iota
	KindBookmark
	KindFolder
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindBookmark:
		return "bookmark"
	case KindFolder:
		return "folder"
	case KindSeparator:
		return "separator"
	}
	return "other"
}

// Format identifies the exporter a bookmarks document came from
type Format int

const (
	FormatUnknown Format = iota
	FormatMozilla
	FormatWebKit
)

func (f Format) String() string {
	switch f {
	case FormatMozilla:
		return "mozilla"
	case FormatWebKit:
		return "webkit"
	}
	return "unknown"
}

// Path locates a folder by the child indices leading to it. How the first
// index is interpreted depends on the source format.
type Path []int

// Child returns a new path with i appended. The receiver is never shared
// with the result.
func (p Path) Child(i int) Path {
	child := make(Path, len(p), len(p)+1)
	copy(child, p)
	return append(child, i)
}

// Parent returns the path without its last index
func (p Path) Parent() Path {
	if len(p) == 0 {
		return Path{}
	}
	parent := make(Path, len(p)-1)
	copy(parent, p)
	return parent
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "/")
}

// ParsePath parses the "0/3/1" form produced by Path.String
func ParsePath(s string) (Path, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return Path{}, nil
	}

	parts := strings.Split(s, "/")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: bad segment %q", ErrInvalidPath, part)
		}
		path = append(path, idx)
	}

	return path, nil
}

// Count holds the number of direct child bookmarks and folders
type Count struct {
	Bookmarks int `json:"bookmarks"`
	Folders   int `json:"folders"`
}

// Folder is a normalized subfolder entry
type Folder struct {
	Title string `json:"title"`
	Path  Path   `json:"path"`
	Count Count  `json:"count"`
}

// Bookmark is a normalized bookmark entry
type Bookmark struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// FolderView is the content of a resolved folder. Path holds the titles
// from the top-level container down to the folder.
type FolderView struct {
	Folders   []Folder   `json:"folders"`
	Bookmarks []Bookmark `json:"bookmarks"`
	Path      []string   `json:"path"`
}

// SearchGroup holds the matching bookmarks of a single folder
type SearchGroup struct {
	Items []Bookmark `json:"items"`
	Path  []string   `json:"path"`
}

type SearchResult struct {
	Count   int           `json:"count"`
	Folders []SearchGroup `json:"folders"`
}

// Source is a navigable bookmarks document. Implementations wrap a decoded
// document and never mutate it.
type Source interface {
	Format() Format
	// Root lists the top-level folders.
	Root() ([]Folder, error)
	// Folder resolves path and lists the direct children of that folder.
	Folder(path Path) (FolderView, error)
	Search(query string) SearchResult
}

// Schema exposes the format specific shape of a raw node to the shared
// traversal routines.
type Schema[N any] interface {
	Classify(n N) Kind
	Title(n N) string
	URI(n N) string
	// Children returns the child nodes and whether the node has a
	// children list at all.
	Children(n N) ([]N, bool)
}

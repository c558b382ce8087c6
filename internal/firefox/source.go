package firefox

import (
	"encoding/json"
	"fmt"

	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
)

// Source navigates a Firefox bookmarks backup. Paths index into the nested
// children lists starting one level below the placesRoot node, so the empty
// path lists the top-level containers (menu, toolbar, ...).
type Source struct {
	root Node
}

// New wraps an already decoded placesRoot node
func New(root Node) *Source {
	return &Source{root: root}
}

// Parse decodes a Firefox bookmarks backup
func Parse(data []byte) (*Source, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return New(root), nil
}

func (s *Source) Format() bookmarks.Format {
	return bookmarks.FormatMozilla
}

// Classify returns the kind of a Firefox node
func (s *Source) Classify(n Node) bookmarks.Kind {
	return schema{}.Classify(n)
}

// CountChildren counts the direct child bookmarks and folders of n
func (s *Source) CountChildren(n Node) (bookmarks.Count, error) {
	return bookmarks.CountChildren[Node](schema{}, n)
}

func (s *Source) Root() ([]bookmarks.Folder, error) {
	view, err := s.Folder(bookmarks.Path{})
	if err != nil {
		return nil, err
	}

	return view.Folders, nil
}

func (s *Source) Folder(path bookmarks.Path) (bookmarks.FolderView, error) {
	if s.root.Children == nil {
		return bookmarks.FolderView{}, &bookmarks.TreeError{
			Title:  s.root.Title,
			Reason: "document root has no children",
		}
	}

	children, crumbs, err := bookmarks.Descend[Node](schema{}, s.root.Children, []string{}, path, 0)
	if err != nil {
		return bookmarks.FolderView{}, err
	}

	return bookmarks.List[Node](schema{}, children, path, crumbs, nil)
}

func (s *Source) Search(query string) bookmarks.SearchResult {
	return bookmarks.Search[Node](schema{}, s.root, bookmarks.Contains(query))
}

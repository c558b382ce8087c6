package webkit

import (
	"encoding/json"
	"fmt"

	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
)

// Root container slots. The first index of a path selects one of them.
const (
	SlotBookmarkBar = iota
	SlotUserRoot
	SlotOther
)

// Source navigates a Chrome/WebKit bookmarks file. Unlike Firefox, the
// first path index is not a child index but one of the fixed root slots;
// the rest of the path indexes into that container.
type Source struct {
	doc Document
}

func New(doc Document) *Source {
	return &Source{doc: doc}
}

// Parse decodes a Chrome/WebKit bookmarks file
func Parse(data []byte) (*Source, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return New(doc), nil
}

func (s *Source) Format() bookmarks.Format {
	return bookmarks.FormatWebKit
}

// Classify returns the kind of a WebKit node
func (s *Source) Classify(n Node) bookmarks.Kind {
	return schema{}.Classify(n)
}

// CountChildren counts the direct child bookmarks and folders of n
func (s *Source) CountChildren(n Node) (bookmarks.Count, error) {
	return bookmarks.CountChildren[Node](schema{}, n)
}

// slot maps a root slot to its container, nil if the slot is unknown or
// absent from the document.
func (s *Source) slot(i int) *Node {
	roots := s.doc.Roots
	switch i {
	case SlotBookmarkBar:
		return roots.BookmarkBar
	case SlotUserRoot:
		if roots.CustomRoot == nil {
			return nil
		}
		return roots.CustomRoot.UserRoot
	case SlotOther:
		return roots.Other
	}
	return nil
}

func (s *Source) Root() ([]bookmarks.Folder, error) {
	folders := []bookmarks.Folder{}
	for _, i := range []int{SlotBookmarkBar, SlotUserRoot, SlotOther} {
		node := s.slot(i)
		if node == nil || isReadingList(*node) {
			continue
		}

		count, err := s.CountChildren(*node)
		if err != nil {
			return nil, err
		}

		folders = append(folders, bookmarks.Folder{
			Title: node.Name,
			Path:  bookmarks.Path{i},
			Count: count,
		})
	}

	return folders, nil
}

func (s *Source) Folder(path bookmarks.Path) (bookmarks.FolderView, error) {
	if len(path) == 0 {
		return bookmarks.FolderView{}, &bookmarks.PathError{Path: path, Reason: "missing root slot"}
	}

	root := s.slot(path[0])
	if root == nil {
		reason := "unsupported root mapping"
		if path[0] == SlotUserRoot {
			reason = "root folder not present"
		}
		return bookmarks.FolderView{}, &bookmarks.PathError{Path: path, Reason: reason}
	}

	if root.Children == nil {
		return bookmarks.FolderView{}, &bookmarks.TreeError{
			Title:  root.Name,
			Reason: "root folder has no children",
		}
	}

	children, crumbs, err := bookmarks.Descend[Node](schema{}, root.Children, []string{root.Name}, path, 1)
	if err != nil {
		return bookmarks.FolderView{}, err
	}

	return bookmarks.List[Node](schema{}, children, path, crumbs, isReadingList)
}

// Search is not supported for WebKit documents and never matches.
func (s *Source) Search(query string) bookmarks.SearchResult {
	return bookmarks.SearchResult{Folders: []bookmarks.SearchGroup{}}
}

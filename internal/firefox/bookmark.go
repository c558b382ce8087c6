package firefox

import (
	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
)

// Node types used by the Firefox JSON backup
const (
	TypePlace     = "text/x-moz-place"
	TypeContainer = "text/x-moz-place-container"
	TypeSeparator = "text/x-moz-place-separator"
)

// PlacesRoot is the root marker of a Firefox bookmarks backup
const PlacesRoot = "placesRoot"

// Node represents a Firefox bookmark, folder or separator. The document
// itself is the placesRoot node.
type Node struct {
	GUID         string `json:"guid,omitempty"`
	ID           int64  `json:"id,omitempty"`
	Index        int    `json:"index,omitempty"`
	Title        string `json:"title"`
	Type         string `json:"type,omitempty"`
	Root         string `json:"root,omitempty"`
	URI          string `json:"uri,omitempty"`
	DateAdded    int64  `json:"dateAdded,omitempty"`
	LastModified int64  `json:"lastModified,omitempty"`
	Children     []Node `json:"children,omitempty"`
}

// schema classifies nodes by shape: a title and uri make a bookmark, a
// title and a children list make a folder.
type schema struct{}

func (schema) Classify(n Node) bookmarks.Kind {
	switch {
	case n.Title != "" && n.URI != "":
		return bookmarks.KindBookmark
	case n.Title != "" && n.Children != nil:
		return bookmarks.KindFolder
	case n.Type == TypeSeparator:
		return bookmarks.KindSeparator
	}
	return bookmarks.KindOther
}

func (schema) Title(n Node) string { return n.Title }

func (schema) URI(n Node) string { return n.URI }

func (schema) Children(n Node) ([]Node, bool) {
	return n.Children, n.Children != nil
}

package webkit

import (
	"github.com/xtruder/json-bookmarks-viewer/internal/bookmarks"
)

const (
	TypeURL    = "url"
	TypeFolder = "folder"
)

// ReadingList is the name of the reading list folder, which is never listed
const ReadingList = "_reading_list_"

// Node represents a bookmark or folder of a Chrome/WebKit bookmarks file
type Node struct {
	ID        string `json:"id,omitempty"`
	GUID      string `json:"guid,omitempty"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url,omitempty"`
	DateAdded string `json:"date_added,omitempty"`
	Children  []Node `json:"children,omitempty"`
}

type CustomRoot struct {
	UserRoot *Node `json:"userRoot,omitempty"`
	Shared   *Node `json:"shared,omitempty"`
	Unsorted *Node `json:"unsorted,omitempty"`
}

// Roots holds the named root containers. Only bookmark_bar,
// custom_root.userRoot and other are navigable.
type Roots struct {
	BookmarkBar *Node       `json:"bookmark_bar,omitempty"`
	CustomRoot  *CustomRoot `json:"custom_root,omitempty"`
	Other       *Node       `json:"other,omitempty"`
	Synced      *Node       `json:"synced,omitempty"`
	Trash       *Node       `json:"trash,omitempty"`
}

// Document represents the top-level JSON structure of a bookmarks file
type Document struct {
	Checksum string `json:"checksum"`
	Roots    Roots  `json:"roots"`
	Version  int    `json:"version"`
}

type schema struct{}

func (schema) Classify(n Node) bookmarks.Kind {
	switch n.Type {
	case TypeURL:
		return bookmarks.KindBookmark
	case TypeFolder:
		return bookmarks.KindFolder
	}
	return bookmarks.KindOther
}

func (schema) Title(n Node) string { return n.Name }

func (schema) URI(n Node) string { return n.URL }

func (schema) Children(n Node) ([]Node, bool) {
	return n.Children, n.Children != nil
}

func isReadingList(n Node) bool {
	return n.Name == ReadingList
}

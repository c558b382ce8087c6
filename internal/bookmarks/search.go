package bookmarks

import (
	"slices"
	"strings"
)

// Matcher reports whether a bookmark field matches a query
type Matcher func(s string) bool

// Contains returns a case-insensitive substring matcher for query
func Contains(query string) Matcher {
	needle := strings.ToLower(query)
	return func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	}
}

type frame[N any] struct {
	node   N
	crumbs []string
}

// Search collects the bookmarks below root whose URI or title matches,
// grouped by the folder that directly contains them. The traversal is an
// iterative depth-first walk; folders are visited in pre-order.
func Search[N any](s Schema[N], root N, match Matcher) SearchResult {
	result := SearchResult{Folders: []SearchGroup{}}
	stack := []frame[N]{{node: root, crumbs: []string{}}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children, ok := s.Children(f.node)
		if !ok {
			continue
		}

		var items []Bookmark
		var subfolders []frame[N]
		for _, child := range children {
			switch s.Classify(child) {
			case KindBookmark:
				uri, title := s.URI(child), s.Title(child)
				if match(uri) || match(title) {
					items = append(items, Bookmark{Title: title, URI: uri})
				}
			case KindFolder:
				crumbs := append(slices.Clone(f.crumbs), s.Title(child))
				subfolders = append(subfolders, frame[N]{node: child, crumbs: crumbs})
			}
		}

		if len(items) > 0 {
			result.Count += len(items)
			result.Folders = append(result.Folders, SearchGroup{Items: items, Path: f.crumbs})
		}

		// push in reverse so the first subfolder is popped first
		for i := len(subfolders) - 1; i >= 0; i-- {
			stack = append(stack, subfolders[i])
		}
	}

	return result
}

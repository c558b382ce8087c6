package bookmarks

import "fmt"

// Descend walks path[from:] down from children and returns the children of
// the node it ends on, with the title of every node passed appended to
// crumbs. Indices before from are the caller's root mapping.
func Descend[N any](s Schema[N], children []N, crumbs []string, path Path, from int) ([]N, []string, error) {
	for depth := from; depth < len(path); depth++ {
		idx := path[depth]
		if idx < 0 || idx >= len(children) {
			return nil, nil, &PathError{
				Path:   path,
				Depth:  depth,
				Reason: fmt.Sprintf("index %d out of range (%d children)", idx, len(children)),
			}
		}

		node := children[idx]
		crumbs = append(crumbs, s.Title(node))

		next, ok := s.Children(node)
		if !ok {
			return nil, nil, &PathError{Path: path, Depth: depth, Reason: "element has no children"}
		}
		children = next
	}

	return children, crumbs, nil
}

// CountChildren counts the direct child bookmarks and folders of n.
// Separators and unknown nodes are not counted.
func CountChildren[N any](s Schema[N], n N) (Count, error) {
	children, ok := s.Children(n)
	if !ok {
		return Count{}, &TreeError{Title: s.Title(n), Reason: "folder has no children"}
	}

	var count Count
	for _, child := range children {
		switch s.Classify(child) {
		case KindBookmark:
			count.Bookmarks++
		case KindFolder:
			count.Folders++
		}
	}

	return count, nil
}

// List partitions the children of the folder at path into bookmarks and
// subfolders, keeping their order. Folders for which skip returns true are
// left out.
func List[N any](s Schema[N], children []N, path Path, crumbs []string, skip func(N) bool) (FolderView, error) {
	if crumbs == nil {
		crumbs = []string{}
	}

	view := FolderView{
		Folders:   []Folder{},
		Bookmarks: []Bookmark{},
		Path:      crumbs,
	}

	for i, child := range children {
		switch s.Classify(child) {
		case KindBookmark:
			view.Bookmarks = append(view.Bookmarks, Bookmark{
				Title: s.Title(child),
				URI:   s.URI(child),
			})
		case KindFolder:
			if skip != nil && skip(child) {
				continue
			}

			count, err := CountChildren(s, child)
			if err != nil {
				return FolderView{}, err
			}

			view.Folders = append(view.Folders, Folder{
				Title: s.Title(child),
				Path:  path.Child(i),
				Count: count,
			})
		}
	}

	return view, nil
}
